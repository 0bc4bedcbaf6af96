// Package docs arma el documento Swagger 2.0 de la API a partir de los
// resources.Kind y lo registra en swag, que es de donde lo lee http-swagger.
package docs

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-openapi/spec"
	"github.com/swaggo/swag"

	"crud-collections-api/internal/domain/resources"
)

const (
	Title   = "Resource CRUD API"
	Version = "1.0"
)

type doc struct {
	json string
}

func (d *doc) ReadDoc() string { return d.json }

var registerOnce sync.Once

// Register publica el documento en swag (una sola vez por proceso).
func Register(kinds []resources.Kind) {
	registerOnce.Do(func() {
		b, err := json.Marshal(Build(kinds))
		if err != nil {
			// spec.Swagger siempre serializa; si no, mejor enterarse al arrancar
			panic(err)
		}
		swag.Register(swag.Name, &doc{json: string(b)})
	})
}

// Build genera el documento para los kinds dados.
func Build(kinds []resources.Kind) *spec.Swagger {
	paths := map[string]spec.PathItem{}
	tags := make([]spec.Tag, 0, len(kinds))

	for _, k := range kinds {
		tags = append(tags, spec.NewTag(k.Title(), "Operations on the "+k.Collection+" collection", nil))

		list := listOperation(k)
		paths["/get_"+k.Plural] = spec.PathItem{PathItemProps: spec.PathItemProps{Get: list}}
		paths["/get_all_"+k.Plural] = spec.PathItem{PathItemProps: spec.PathItemProps{Get: list}}

		paths["/get_"+k.Name+"/{id}"] = spec.PathItem{PathItemProps: spec.PathItemProps{Get: getOperation(k)}}
		paths["/add_"+k.Name] = spec.PathItem{PathItemProps: spec.PathItemProps{Post: addOperation(k)}}
		paths["/update_"+k.Name+"/{id}"] = spec.PathItem{PathItemProps: spec.PathItemProps{Put: updateOperation(k)}}
		paths["/delete_"+k.Name+"/{id}"] = spec.PathItem{PathItemProps: spec.PathItemProps{Delete: deleteOperation(k)}}
	}

	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			Consumes: []string{"application/json"},
			Produces: []string{"application/json"},
			Info: &spec.Info{InfoProps: spec.InfoProps{
				Title:       Title,
				Description: "CRUD over the users, books and pets collections.",
				Version:     Version,
			}},
			Paths: &spec.Paths{Paths: paths},
			Tags:  tags,
		},
	}
}

func listOperation(k resources.Kind) *spec.Operation {
	return spec.NewOperation("list"+k.Title()+"s").
		WithTags(k.Title()).
		WithSummary("Get all " + k.Plural).
		RespondsWith(http.StatusOK, response("List of all "+k.Plural, spec.ArrayProperty(documentSchema(k))))
}

func getOperation(k resources.Kind) *spec.Operation {
	return spec.NewOperation("get"+k.Title()).
		WithTags(k.Title()).
		WithSummary("Get a "+k.Name+" by ID").
		AddParam(idParam("The ID of the "+k.Name+" to retrieve")).
		RespondsWith(http.StatusOK, response("A single "+k.Name, documentSchema(k))).
		RespondsWith(http.StatusBadRequest, response("Invalid "+k.Name+" ID", errorSchema())).
		RespondsWith(http.StatusNotFound, response(k.Title()+" not found", errorSchema()))
}

func addOperation(k resources.Kind) *spec.Operation {
	return spec.NewOperation("add"+k.Title()).
		WithTags(k.Title()).
		WithSummary("Add a new "+k.Name).
		AddParam(spec.BodyParam(k.Name, payloadSchema(k)).
			WithDescription("The "+k.Name+" details to be added").
			AsRequired()).
		RespondsWith(http.StatusCreated, response(k.Title()+" added successfully", createdSchema(k))).
		RespondsWith(http.StatusBadRequest, response("Missing required parameters", errorSchema()))
}

func updateOperation(k resources.Kind) *spec.Operation {
	return spec.NewOperation("update"+k.Title()).
		WithTags(k.Title()).
		WithSummary("Update an existing "+k.Name).
		AddParam(idParam("The ID of the "+k.Name+" to be updated")).
		AddParam(spec.BodyParam(k.Name, payloadSchema(k)).
			WithDescription("The updated details of the "+k.Name).
			AsRequired()).
		RespondsWith(http.StatusOK, response(k.Title()+" updated successfully", messageSchema())).
		RespondsWith(http.StatusBadRequest, response("Missing required parameters or invalid "+k.Name+" ID", errorSchema())).
		RespondsWith(http.StatusNotFound, response(k.Title()+" not found", errorSchema()))
}

func deleteOperation(k resources.Kind) *spec.Operation {
	return spec.NewOperation("delete"+k.Title()).
		WithTags(k.Title()).
		WithSummary("Delete a "+k.Name).
		AddParam(idParam("The ID of the "+k.Name+" to be deleted")).
		RespondsWith(http.StatusOK, response(k.Title()+" deleted successfully", messageSchema())).
		RespondsWith(http.StatusBadRequest, response("Invalid "+k.Name+" ID", errorSchema())).
		RespondsWith(http.StatusNotFound, response(k.Title()+" not found", errorSchema()))
}

func idParam(desc string) *spec.Parameter {
	return spec.PathParam("id").Typed("string", "").WithDescription(desc)
}

func response(desc string, schema *spec.Schema) *spec.Response {
	return spec.NewResponse().WithDescription(desc).WithSchema(schema)
}

func fieldSchema(f resources.Field) spec.Schema {
	var s *spec.Schema
	switch f.Type {
	case resources.FieldInteger:
		s = spec.Int64Property()
	default:
		s = spec.StringProperty()
	}
	return *s.WithDescription(f.Description)
}

func payloadSchema(k resources.Kind) *spec.Schema {
	s := &spec.Schema{SchemaProps: spec.SchemaProps{
		Type:       spec.StringOrArray{"object"},
		Properties: map[string]spec.Schema{},
		Required:   k.FieldNames(),
	}}
	for _, f := range k.Fields {
		s.Properties[f.Name] = fieldSchema(f)
	}
	return s
}

func documentSchema(k resources.Kind) *spec.Schema {
	s := payloadSchema(k)
	s.Required = nil
	s.Properties["_id"] = *spec.StringProperty().WithDescription("Store-assigned identifier")
	return s
}

func createdSchema(k resources.Kind) *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{
		Type: spec.StringOrArray{"object"},
		Properties: map[string]spec.Schema{
			"message":      *spec.StringProperty(),
			"id":           *spec.StringProperty(),
			k.Name + "_id": *spec.StringProperty(),
		},
	}}
}

func messageSchema() *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{
		Type:       spec.StringOrArray{"object"},
		Properties: map[string]spec.Schema{"message": *spec.StringProperty()},
	}}
}

func errorSchema() *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{
		Type:       spec.StringOrArray{"object"},
		Properties: map[string]spec.Schema{"error": *spec.StringProperty()},
	}}
}
