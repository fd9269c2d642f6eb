package constraint

// NodeKind discriminates the two node shapes a Set can hold.
type NodeKind int

const (
	// NodeScalar binds one path to an ordered constraint list.
	NodeScalar NodeKind = iota

	// NodeQuantifier quantifies element constraints over a collection.
	NodeQuantifier
)

// Node is one conjunct of a Set: either a scalar path with its constraints
// or a quantifier.
type Node struct {
	Kind        NodeKind
	Path        Path         // scalar nodes
	Constraints []Constraint // scalar nodes, declaration order
	Quantifier  Quantifier   // quantifier nodes
}

// Set is a conjunction of constraint nodes over a document. Nodes keep
// declaration order, which is also the evaluation order. Scalar paths are
// unique keys: requiring more constraints on an existing path appends to
// that path's list instead of adding a node.
type Set struct {
	nodes []Node
	index map[string]int // path key -> position in nodes, scalar nodes only
}

// NewSet creates an empty constraint set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Require conjoins constraints at the given path. Constraints accumulate in
// declaration order; repeated calls for the same path extend its list.
func (s *Set) Require(path Path, constraints ...Constraint) *Set {
	key := path.Key()
	if i, ok := s.index[key]; ok {
		s.nodes[i].Constraints = append(s.nodes[i].Constraints, constraints...)
		return s
	}

	s.index[key] = len(s.nodes)
	s.nodes = append(s.nodes, Node{
		Kind:        NodeScalar,
		Path:        path,
		Constraints: append([]Constraint(nil), constraints...),
	})
	return s
}

// Quantify conjoins a quantifier node.
func (s *Set) Quantify(q Quantifier) *Set {
	s.nodes = append(s.nodes, Node{Kind: NodeQuantifier, Quantifier: q})
	return s
}

// Nodes returns the set's nodes in declaration order.
// The returned slice is shared; callers must not modify it.
func (s *Set) Nodes() []Node {
	return s.nodes
}

// Len returns the number of nodes in the set.
func (s *Set) Len() int {
	return len(s.nodes)
}

// ConstraintsAt returns the constraint list declared at the given scalar
// path, or false if the path is not present.
func (s *Set) ConstraintsAt(path Path) ([]Constraint, bool) {
	i, ok := s.index[path.Key()]
	if !ok {
		return nil, false
	}
	return s.nodes[i].Constraints, true
}

// HasQuantifiers reports whether the set contains any quantifier node.
func (s *Set) HasQuantifiers() bool {
	for _, n := range s.nodes {
		if n.Kind == NodeQuantifier {
			return true
		}
	}
	return false
}
