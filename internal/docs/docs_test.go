package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"

	"crud-collections-api/internal/domain/resources"
)

func TestBuild_HasAllRoutesPerKind(t *testing.T) {
	sw := Build(resources.Kinds())

	for _, k := range resources.Kinds() {
		for _, p := range []string{
			"/get_" + k.Plural,
			"/get_all_" + k.Plural,
			"/get_" + k.Name + "/{id}",
			"/add_" + k.Name,
			"/update_" + k.Name + "/{id}",
			"/delete_" + k.Name + "/{id}",
		} {
			if _, ok := sw.Paths.Paths[p]; !ok {
				t.Fatalf("missing path %s", p)
			}
		}
	}

	add := sw.Paths.Paths["/add_pet"].Post
	if add == nil || len(add.Parameters) != 1 || add.Parameters[0].Schema == nil {
		t.Fatalf("add_pet must have a body parameter")
	}
	required := add.Parameters[0].Schema.Required
	if len(required) != 4 || required[2] != "type" || required[3] != "owner" {
		t.Fatalf("unexpected pet required fields: %v", required)
	}
}

func TestRegister_ServesDocThroughSwag(t *testing.T) {
	Register(resources.Kinds())
	Register(resources.Kinds()) // idempotente

	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("doc is not json: %v", err)
	}
	if m["swagger"] != "2.0" {
		t.Fatalf("unexpected swagger version: %v", m["swagger"])
	}
}
