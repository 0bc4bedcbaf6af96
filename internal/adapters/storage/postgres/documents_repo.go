package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"crud-collections-api/internal/ports/docstore"
)

// DocumentsRepo guarda cada colección como filas JSONB de la tabla documents.
type DocumentsRepo struct {
	db *sql.DB
}

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

func (r *DocumentsRepo) FindAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, body
		FROM documents
		WHERE collection = $1
		ORDER BY seq ASC
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]docstore.Document, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}

		fields, err := decodeBody(body)
		if err != nil {
			return nil, err
		}
		out = append(out, docstore.Document{ID: id.String(), Fields: fields})
	}

	return out, rows.Err()
}

func (r *DocumentsRepo) FindByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	key, err := parseID(id)
	if err != nil {
		return docstore.Document{}, err
	}

	var body []byte
	err = r.db.QueryRowContext(ctx, `
		SELECT body
		FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}

	fields, err := decodeBody(body)
	if err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{ID: key.String(), Fields: fields}, nil
}

func (r *DocumentsRepo) Insert(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	body, err := encodeBody(fields)
	if err != nil {
		return "", err
	}

	id := uuid.New()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3::jsonb)
	`, collection, id, body)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *DocumentsRepo) UpdateByID(ctx context.Context, collection, id string, fields docstore.Fields) (int64, error) {
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}

	body, err := encodeBody(fields)
	if err != nil {
		return 0, err
	}

	// || hace merge superficial de objetos jsonb, igual que $set por campo
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET body = body || $3::jsonb
		WHERE collection = $1 AND id = $2
	`, collection, key, body)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *DocumentsRepo) DeleteByID(ctx context.Context, collection, id string) (int64, error) {
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, key)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *DocumentsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *DocumentsRepo) Close(ctx context.Context) error {
	return r.db.Close()
}

func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", docstore.ErrInvalidID, id)
	}
	return u, nil
}

func encodeBody(fields docstore.Fields) ([]byte, error) {
	if fields == nil {
		fields = docstore.Fields{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

func decodeBody(body []byte) (docstore.Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	n, err := docstore.NormalizeNumbers(raw)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return docstore.Fields(n.(map[string]any)), nil
}
