package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
)

// Fields es el contenido de un documento, sin el identificador.
type Fields map[string]any

// Document es un documento persistido con su id nativo del store (como string).
type Document struct {
	ID     string
	Fields Fields
}

// Store es el contrato mínimo que necesita el CRUD genérico.
// Cada adapter (mongo, postgres, memory) decide el formato de sus ids y
// devuelve ErrInvalidID cuando el id no se puede parsear.
type Store interface {
	FindAll(ctx context.Context, collection string) ([]Document, error)
	FindByID(ctx context.Context, collection, id string) (Document, error)
	Insert(ctx context.Context, collection string, fields Fields) (string, error)

	// UpdateByID hace merge ($set) de fields sobre el documento. Retorna cuántos matchearon.
	UpdateByID(ctx context.Context, collection, id string, fields Fields) (int64, error)
	DeleteByID(ctx context.Context, collection, id string) (int64, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
