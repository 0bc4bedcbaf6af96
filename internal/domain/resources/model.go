package resources

import (
	"strings"
)

// FieldType solo se usa para documentar (swagger); no se valida el tipo.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
)

// Field es un campo requerido de un recurso.
type Field struct {
	Name        string
	Type        FieldType
	Description string
}

// Kind describe un recurso CRUD: su colección y su set de campos requeridos F(R).
type Kind struct {
	Name       string // user
	Plural     string // users
	Collection string
	Fields     []Field
}

var (
	User = Kind{
		Name:       "user",
		Plural:     "users",
		Collection: "users",
		Fields: []Field{
			{Name: "name", Type: FieldString, Description: "The name of the user"},
			{Name: "age", Type: FieldInteger, Description: "The age of the user"},
			{Name: "school", Type: FieldString, Description: "The school of the user"},
		},
	}

	Book = Kind{
		Name:       "book",
		Plural:     "books",
		Collection: "books",
		Fields: []Field{
			{Name: "title", Type: FieldString, Description: "The title of the book"},
			{Name: "author", Type: FieldString, Description: "The author of the book"},
			{Name: "year", Type: FieldInteger, Description: "The publication year of the book"},
		},
	}

	Pet = Kind{
		Name:       "pet",
		Plural:     "pets",
		Collection: "pets",
		Fields: []Field{
			{Name: "name", Type: FieldString, Description: "The name of the pet"},
			{Name: "age", Type: FieldInteger, Description: "The age of the pet"},
			{Name: "type", Type: FieldString, Description: "The type of animal (dog, cat, ...)"},
			{Name: "owner", Type: FieldString, Description: "The owner of the pet"},
		},
	}
)

// Kinds devuelve los recursos expuestos por la API, en orden estable.
func Kinds() []Kind {
	return []Kind{User, Book, Pet}
}

// Title es el nombre para mensajes: "User", "Book", "Pet".
func (k Kind) Title() string {
	if k.Name == "" {
		return ""
	}
	return strings.ToUpper(k.Name[:1]) + k.Name[1:]
}

func (k Kind) FieldNames() []string {
	out := make([]string, 0, len(k.Fields))
	for _, f := range k.Fields {
		out = append(out, f.Name)
	}
	return out
}

// RequiredMessage arma "Name, age, and school are required".
func (k Kind) RequiredMessage() string {
	names := k.FieldNames()
	if len(names) == 0 {
		return ""
	}
	names[0] = strings.ToUpper(names[0][:1]) + names[0][1:]

	switch len(names) {
	case 1:
		return names[0] + " is required"
	case 2:
		return names[0] + " and " + names[1] + " are required"
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1] + " are required"
	}
}
