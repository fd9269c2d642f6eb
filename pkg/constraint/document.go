package constraint

// Document is the runtime value a constraint set is evaluated against: an
// arbitrarily nested map of scalars, maps, and collections, as produced by a
// JSON or YAML decoder.
type Document map[string]interface{}

// Resolve navigates the document along the path through nested maps.
// It reports false the instant any intermediate segment or the final value
// is absent or not navigable.
func (d Document) Resolve(path Path) (interface{}, bool) {
	var cur interface{} = map[string]interface{}(d)

	for _, sel := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[sel]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

// asMap normalizes the map shapes decoders produce.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Document:
		return map[string]interface{}(m), true
	default:
		return nil, false
	}
}

// AsCollection normalizes the slice shapes decoders produce into a uniform
// element accessor. It reports false if v is not a collection.
func AsCollection(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case []map[string]interface{}:
		elems := make([]interface{}, len(s))
		for i := range s {
			elems[i] = s[i]
		}
		return elems, true
	case []Document:
		elems := make([]interface{}, len(s))
		for i := range s {
			elems[i] = s[i]
		}
		return elems, true
	default:
		return nil, false
	}
}

// ResolveIn navigates a collection element along a relative path.
// Elements that are not maps resolve nothing.
func ResolveIn(elem interface{}, rel Path) (interface{}, bool) {
	m, ok := asMap(elem)
	if !ok {
		return nil, false
	}
	return Document(m).Resolve(rel)
}
