package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"crud-collections-api/internal/ports/docstore"
)

type entry struct {
	seq    uint64
	fields docstore.Fields
}

// DocumentRepo es un docstore.Store en memoria, para modo dev y tests.
// Los ids son UUID; un id que no parsea como UUID es docstore.ErrInvalidID.
type DocumentRepo struct {
	mu          sync.RWMutex
	seq         uint64
	collections map[string]map[string]entry
}

func NewDocumentRepo() *DocumentRepo {
	return &DocumentRepo{
		collections: make(map[string]map[string]entry),
	}
}

func (r *DocumentRepo) FindAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type item struct {
		id string
		e  entry
	}

	items := make([]item, 0, len(r.collections[collection]))
	for id, e := range r.collections[collection] {
		items = append(items, item{id: id, e: e})
	}

	// Orden de inserción, como el natural order de mongo en una colección sin updates que muevan docs
	sort.Slice(items, func(i, j int) bool {
		return items[i].e.seq < items[j].e.seq
	})

	out := make([]docstore.Document, 0, len(items))
	for _, it := range items {
		out = append(out, docstore.Document{ID: it.id, Fields: it.e.fields.Clone()})
	}
	return out, nil
}

func (r *DocumentRepo) FindByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	key, err := parseID(id)
	if err != nil {
		return docstore.Document{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.collections[collection][key]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return docstore.Document{ID: key, Fields: e.fields.Clone()}, nil
}

func (r *DocumentRepo) Insert(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.collections[collection]
	if !ok {
		c = make(map[string]entry)
		r.collections[collection] = c
	}

	id := uuid.NewString()
	r.seq++
	c[id] = entry{seq: r.seq, fields: fields.Clone()}
	return id, nil
}

func (r *DocumentRepo) UpdateByID(ctx context.Context, collection, id string, fields docstore.Fields) (int64, error) {
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.collections[collection][key]
	if !ok {
		return 0, nil
	}

	merged := e.fields.Clone()
	if merged == nil {
		merged = docstore.Fields{}
	}
	for k, v := range fields.Clone() {
		merged[k] = v
	}
	r.collections[collection][key] = entry{seq: e.seq, fields: merged}
	return 1, nil
}

func (r *DocumentRepo) DeleteByID(ctx context.Context, collection, id string) (int64, error) {
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.collections[collection][key]; !ok {
		return 0, nil
	}
	delete(r.collections[collection], key)
	return 1, nil
}

func (r *DocumentRepo) Ping(ctx context.Context) error { return nil }

func (r *DocumentRepo) Close(ctx context.Context) error { return nil }

func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", docstore.ErrInvalidID, id)
	}
	return u.String(), nil
}
