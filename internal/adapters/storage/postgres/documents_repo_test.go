package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"

	"crud-collections-api/internal/ports/docstore"
)

func TestParseID_RejectsMalformed(t *testing.T) {
	if _, err := parseID("123"); !errors.Is(err, docstore.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := parseID("6f1c0e52-4a0e-4b8e-9a51-2f1f3f6c9b10"); err != nil {
		t.Fatalf("expected valid uuid, got %v", err)
	}
}

func TestBodyRoundTrip_KeepsIntegers(t *testing.T) {
	b, err := encodeBody(docstore.Fields{"title": "Dune", "year": int64(1965)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeBody(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["year"] != int64(1965) || got["title"] != "Dune" {
		t.Fatalf("unexpected fields: %#v", got)
	}
}

// Requiere un Postgres real: CRUDAPI_TEST_POSTGRES_DSN=postgres://...
func TestDocumentsRepo_Live(t *testing.T) {
	dsn := os.Getenv("CRUDAPI_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CRUDAPI_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r := NewDocumentsRepo(db)
	defer r.Close(ctx)

	const coll = "test_books"
	id, err := r.Insert(ctx, coll, docstore.Fields{"title": "Dune", "author": "Herbert", "year": int64(1965)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	defer r.DeleteByID(ctx, coll, id)

	n, err := r.UpdateByID(ctx, coll, id, docstore.Fields{"year": int64(1966)})
	if err != nil || n != 1 {
		t.Fatalf("update: n=%d err=%v", n, err)
	}

	d, err := r.FindByID(ctx, coll, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if d.Fields["year"] != int64(1966) || d.Fields["author"] != "Herbert" {
		t.Fatalf("unexpected fields: %#v", d.Fields)
	}
}

func TestDocumentsRepo_LiveInsertionOrderWithinOneTimestamp(t *testing.T) {
	dsn := os.Getenv("CRUDAPI_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CRUDAPI_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r := NewDocumentsRepo(db)
	defer r.Close(ctx)

	const coll = "test_order"
	if _, err := db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1`, coll); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	defer db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1`, coll)

	// Una sola transacción: now() es igual para todas las filas
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	want := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		id := uuid.New()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (collection, id, body)
			VALUES ($1, $2, $3::jsonb)
		`, coll, id, fmt.Sprintf(`{"n":%d}`, i)); err != nil {
			_ = tx.Rollback()
			t.Fatalf("insert %d: %v", i, err)
		}
		want = append(want, id.String())
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	docs, err := r.FindAll(ctx, coll)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(docs) != len(want) {
		t.Fatalf("expected %d docs, got %d", len(want), len(docs))
	}
	for i, d := range docs {
		if d.ID != want[i] || d.Fields["n"] != int64(i) {
			t.Fatalf("position %d: expected %s (n=%d), got %s %v", i, want[i], i, d.ID, d.Fields)
		}
	}
}
