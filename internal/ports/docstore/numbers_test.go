package docstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeNumbers(t *testing.T) {
	dec := json.NewDecoder(bytes.NewReader([]byte(`{"age":30,"score":2.5,"tags":[1,"x"],"nested":{"year":1999}}`)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	n, err := NormalizeNumbers(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	got := n.(map[string]any)

	if v, ok := got["age"].(int64); !ok || v != 30 {
		t.Fatalf("expected age int64(30), got %T %v", got["age"], got["age"])
	}
	if v, ok := got["score"].(float64); !ok || v != 2.5 {
		t.Fatalf("expected score float64(2.5), got %T %v", got["score"], got["score"])
	}
	tags := got["tags"].([]any)
	if _, ok := tags[0].(int64); !ok {
		t.Fatalf("expected tags[0] int64, got %T", tags[0])
	}
	nested := got["nested"].(map[string]any)
	if v, ok := nested["year"].(int64); !ok || v != 1999 {
		t.Fatalf("expected nested.year int64(1999), got %T %v", nested["year"], nested["year"])
	}
}

func TestNormalizeNumbers_OutOfRangeIsRejected(t *testing.T) {
	cases := []string{
		`{"age":1e400}`,
		`{"age":-1e400}`,
		`{"meta":{"tags":[1,2e999]}}`,
	}

	for _, in := range cases {
		dec := json.NewDecoder(bytes.NewReader([]byte(in)))
		dec.UseNumber()

		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			t.Fatalf("decode %s: %v", in, err)
		}

		got, err := NormalizeNumbers(raw)
		if !errors.Is(err, ErrNumberRange) {
			t.Fatalf("%s: expected ErrNumberRange, got %v (value %v)", in, err, got)
		}
		if got != nil {
			t.Fatalf("%s: expected no value on error, got %#v", in, got)
		}
	}
}

func TestNormalizeNumbers_LargeIntegerBecomesFloat(t *testing.T) {
	got, err := NormalizeNumbers(json.Number("99999999999999999999"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if f, ok := got.(float64); !ok || f != 1e20 {
		t.Fatalf("expected float64(1e20), got %T %v", got, got)
	}
}

func TestFieldsClone_IsDeep(t *testing.T) {
	orig := Fields{"name": "Ana", "meta": map[string]any{"k": "v"}}
	cp := orig.Clone()

	cp["name"] = "Other"
	cp["meta"].(map[string]any)["k"] = "changed"

	if orig["name"] != "Ana" {
		t.Fatalf("clone shares top-level map")
	}
	if orig["meta"].(map[string]any)["k"] != "v" {
		t.Fatalf("clone shares nested map")
	}
}
