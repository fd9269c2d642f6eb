package constraint

import (
	"fmt"
	"strings"
)

// Path identifies a location in a document as an ordered, non-empty sequence
// of field selectors. Two paths address the same location iff their selector
// sequences are equal.
type Path []string

// ParsePath parses dot notation ("user.role") into a Path.
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty path")
	}

	parts := strings.Split(s, ".")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("invalid path %q: empty selector", s)
		}
	}

	return Path(parts), nil
}

// MustParsePath is like ParsePath but panics on error.
// Use only with literal paths known to be well-formed.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the dot notation form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Key returns the canonical map key for the path.
// Paths with equal selector sequences produce equal keys.
func (p Path) Key() string {
	return strings.Join(p, "\x00")
}

// Equal reports whether two paths have the same selector sequence.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether the path has no selectors.
func (p Path) IsZero() bool {
	return len(p) == 0
}

// Join returns a new path with the relative path appended.
// It is used to qualify element-relative paths with their collection path.
func (p Path) Join(rel Path) Path {
	joined := make(Path, 0, len(p)+len(rel))
	joined = append(joined, p...)
	joined = append(joined, rel...)
	return joined
}
