package docstore

// Fields holds a document's data. Values are strings, string slices, or
// whatever JSON decoding produced ([]any for arrays).
type Fields map[string]any

type Document struct {
	ID     string
	Fields Fields
}

// String returns the string value of key, or "" when missing or not a string.
func (d Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Strings returns the string elements of an array field. Non-string
// elements are skipped.
func (d Document) Strings(key string) []string {
	return toStrings(d.Fields[key])
}

func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	case []any:
		out := make([]string, 0, len(vv))
		for _, it := range vv {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		switch vv := v.(type) {
		case []string:
			c := make([]string, len(vv))
			copy(c, vv)
			out[k] = c
		case []any:
			c := make([]any, len(vv))
			copy(c, vv)
			out[k] = c
		default:
			out[k] = v
		}
	}
	return out
}
