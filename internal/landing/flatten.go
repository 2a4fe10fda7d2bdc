package landing

import "sort"

// Flatten walks a decoded JSON document and emits every record it holds.
// Accepted shapes, possibly nested: an array of records or of arrays, an
// envelope object whose array fields hold records, or a single record.
func Flatten(doc any, fn func(Record) error) error {
	switch v := doc.(type) {
	case []any:
		for _, elem := range v {
			if err := Flatten(elem, fn); err != nil {
				return err
			}
		}
	case map[string]any:
		if fields := envelopeFields(v); fields != nil {
			for _, k := range fields {
				if err := Flatten(v[k], fn); err != nil {
					return err
				}
			}
			return nil
		}
		return fn(Record(v))
	}
	return nil
}

// envelopeFields returns the keys of obj when every value is an array of
// objects, in key order. A record with scalar fields returns nil.
func envelopeFields(obj map[string]any) []string {
	if len(obj) == 0 {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		arr, ok := v.([]any)
		if !ok {
			return nil
		}
		for _, elem := range arr {
			if _, ok := elem.(map[string]any); !ok {
				return nil
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
