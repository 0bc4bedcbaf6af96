package resources

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"crud-collections-api/internal/ports/docstore"
)

var validate = validator.New()

// present replica el chequeo de "truthiness": ausente, null, "", 0, false,
// [] y {} cuentan como faltantes. age=0 se rechaza (limitación conocida).
func present(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}

	return validate.Var(v, "required") == nil
}

// pick valida y proyecta el body a los campos de F(R). Las keys extra se descartan.
// Un número fuera de rango en un campo de F(R) es *InvalidNumberError.
func pick(k Kind, body map[string]any) (docstore.Fields, []string, error) {
	fields := make(docstore.Fields, len(k.Fields))
	var missing []string

	for _, f := range k.Fields {
		v, ok := body[f.Name]
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		// json.Number("0") es un string no vacío; normalizar antes de chequear
		v, err := docstore.NormalizeNumbers(v)
		if err != nil {
			return nil, nil, &InvalidNumberError{Field: f.Name, Err: err}
		}
		if !present(v) {
			missing = append(missing, f.Name)
			continue
		}
		fields[f.Name] = v
	}

	return fields, missing, nil
}
