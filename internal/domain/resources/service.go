package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crud-collections-api/internal/ports/docstore"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("invalid id")
	ErrMissingFields = errors.New("missing required parameters")
	ErrInvalidNumber = errors.New("invalid number")
)

// MissingFieldsError lleva qué campos de F(R) faltaron.
type MissingFieldsError struct {
	Kind   Kind
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return e.Kind.RequiredMessage() + " (missing: " + strings.Join(e.Fields, ", ") + ")"
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingFields }

// InvalidNumberError: un campo trae un número que no se puede guardar como número.
type InvalidNumberError struct {
	Field string
	Err   error
}

func (e *InvalidNumberError) Error() string {
	return e.Field + " is out of range"
}

func (e *InvalidNumberError) Unwrap() []error { return []error{ErrInvalidNumber, e.Err} }

// Service es el CRUD genérico de un Kind sobre un docstore.Store.
type Service struct {
	kind  Kind
	store docstore.Store
}

func NewService(kind Kind, store docstore.Store) *Service {
	return &Service{
		kind:  kind,
		store: store,
	}
}

func (s *Service) Kind() Kind { return s.kind }

func (s *Service) List(ctx context.Context) ([]docstore.Document, error) {
	docs, err := s.store.FindAll(ctx, s.kind.Collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.Plural, err)
	}
	return docs, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (docstore.Document, error) {
	d, err := s.store.FindByID(ctx, s.kind.Collection, id)
	if err != nil {
		return docstore.Document{}, s.mapErr("get", err)
	}
	return d, nil
}

// Create valida F(R) y retorna el id asignado por el store.
func (s *Service) Create(ctx context.Context, body map[string]any) (string, error) {
	fields, missing, err := pick(s.kind, body)
	if err != nil {
		return "", err
	}
	if len(missing) > 0 {
		return "", &MissingFieldsError{Kind: s.kind, Fields: missing}
	}

	id, err := s.store.Insert(ctx, s.kind.Collection, fields)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", s.kind.Name, err)
	}
	return id, nil
}

// Update reemplaza todos los campos de F(R); el id no cambia.
// Retorna la cantidad de documentos que matchearon (0 => ErrNotFound).
func (s *Service) Update(ctx context.Context, id string, body map[string]any) (int64, error) {
	fields, missing, err := pick(s.kind, body)
	if err != nil {
		return 0, err
	}
	if len(missing) > 0 {
		return 0, &MissingFieldsError{Kind: s.kind, Fields: missing}
	}

	n, err := s.store.UpdateByID(ctx, s.kind.Collection, id, fields)
	if err != nil {
		return 0, s.mapErr("update", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.DeleteByID(ctx, s.kind.Collection, id)
	if err != nil {
		return s.mapErr("delete", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) mapErr(op string, err error) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, docstore.ErrInvalidID):
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	default:
		return fmt.Errorf("%s %s: %w", op, s.kind.Name, err)
	}
}

// Project arma la respuesta {_id, campos de F(R)}. Campos faltantes van como null.
func Project(k Kind, d docstore.Document) map[string]any {
	out := make(map[string]any, len(k.Fields)+1)
	out["_id"] = d.ID
	for _, f := range k.Fields {
		out[f.Name] = d.Fields[f.Name]
	}
	return out
}
