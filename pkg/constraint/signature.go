package constraint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"reflect"
	"sort"
)

// Signature computes the cache key for this set under the given operator
// registry version. Two sets with the same nodes in the same declaration
// order share a signature; any change to the set or a registry version bump
// produces a different one.
func (s *Set) Signature(registryVersion string) string {
	h := sha256.New()

	io.WriteString(h, registryVersion)
	io.WriteString(h, "\n")

	for _, n := range s.nodes {
		switch n.Kind {
		case NodeScalar:
			io.WriteString(h, "p:")
			io.WriteString(h, n.Path.Key())
			for _, c := range n.Constraints {
				writeConstraint(h, c)
			}

		case NodeQuantifier:
			io.WriteString(h, "q:")
			io.WriteString(h, string(n.Quantifier.Kind))
			io.WriteString(h, ":")
			io.WriteString(h, n.Quantifier.Collection.Key())
			for _, ec := range n.Quantifier.Where {
				io.WriteString(h, "|")
				io.WriteString(h, ec.Path.Key())
				writeConstraint(h, ec.Constraint)
			}
		}
		io.WriteString(h, "\n")
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeConstraint(w io.Writer, c Constraint) {
	fmt.Fprintf(w, ";%s=", c.Op)
	writeValue(w, c.Value)
}

// writeValue renders a constraint value deterministically. Maps are walked
// in sorted key order; %#v alone would render them in iteration order and
// make the signature unstable across runs.
func writeValue(w io.Writer, v interface{}) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := fmt.Sprintf("%#v", k.Interface())
			keys = append(keys, ks)
			byKey[ks] = rv.MapIndex(k)
		}
		sort.Strings(keys)
		io.WriteString(w, "map{")
		for _, ks := range keys {
			io.WriteString(w, ks)
			io.WriteString(w, ":")
			writeValue(w, byKey[ks].Interface())
			io.WriteString(w, ",")
		}
		io.WriteString(w, "}")

	case reflect.Slice, reflect.Array:
		io.WriteString(w, "list[")
		for i := 0; i < rv.Len(); i++ {
			writeValue(w, rv.Index(i).Interface())
			io.WriteString(w, ",")
		}
		io.WriteString(w, "]")

	default:
		// %#v distinguishes value types, so eq "5" and eq 5 hash differently.
		fmt.Fprintf(w, "%#v", v)
	}
}
