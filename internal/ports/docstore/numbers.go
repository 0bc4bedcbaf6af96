package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNumberRange: el literal no entra ni en int64 ni en float64 (p.ej. 1e400).
var ErrNumberRange = errors.New("number out of range")

// NormalizeNumbers reemplaza json.Number por int64 (si es entero) o float64.
// Los bodies se decodifican con UseNumber; sin esto los drivers guardarían
// json.Number como string.
func NormalizeNumbers(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNumberRange, t.String())
		}
		return f, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			n, err := NormalizeNumbers(x)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case Fields:
		out := make(Fields, len(t))
		for k, x := range t {
			n, err := NormalizeNumbers(x)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			n, err := NormalizeNumbers(x)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

// Clone copia fields en profundidad (maps y slices anidados).
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = cloneValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	default:
		return v
	}
}
