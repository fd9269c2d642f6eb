package policyfile

import (
	"regexp"

	"gopkg.in/yaml.v3"

	"meridian-hq/polaris/pkg/constraint"
	"meridian-hq/polaris/pkg/constraint/registry"
)

// File is a parsed and validated policy file.
type File struct {
	// Name identifies the constraint set.
	Name string

	// Version is the author-declared file version.
	Version string

	// Description is free-form documentation.
	Description string

	// Set is the constraint set the file declares, with file order preserved
	// as declaration order.
	Set *constraint.Set

	// Source is the path the file was parsed from, if any.
	Source string
}

// Parser turns YAML policy documents into constraint sets.
type Parser struct {
	reg *registry.Registry
}

// NewParser creates a parser that validates operators against the given
// registry, so files may use registered extension operators. A nil registry
// restricts files to the built-in operator table.
func NewParser(reg *registry.Registry) *Parser {
	if reg == nil {
		reg = registry.New()
	}
	return &Parser{reg: reg}
}

// Parse parses and validates a policy document. source names the origin for
// error locations (a file path, or something like "<inline>").
func (p *Parser) Parse(data []byte, source string) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &Error{
			Type:     ErrorTypeSyntax,
			Location: Location{File: source},
			Message:  "malformed YAML",
			Cause:    err,
		}
	}

	var raw yamlFile
	if err := root.Decode(&raw); err != nil {
		return nil, &Error{
			Type:     ErrorTypeStructural,
			Location: Location{File: source},
			Message:  "policy file does not match the expected schema",
			Cause:    err,
		}
	}

	if raw.Name == "" {
		return nil, newError(ErrorTypeStructural, Location{File: source}, "missing required field %q", "name")
	}
	if len(raw.Constraints) == 0 && len(raw.Quantifiers) == 0 {
		return nil, newError(ErrorTypeStructural, Location{File: source}, "policy declares no constraints or quantifiers")
	}

	set := constraint.NewSet()

	for _, yc := range raw.Constraints {
		if err := p.buildScalar(set, yc, source); err != nil {
			return nil, err
		}
	}
	for _, yq := range raw.Quantifiers {
		if err := p.buildQuantifier(set, yq, source); err != nil {
			return nil, err
		}
	}

	return &File{
		Name:        raw.Name,
		Version:     raw.Version,
		Description: raw.Description,
		Set:         set,
		Source:      source,
	}, nil
}

func (p *Parser) buildScalar(set *constraint.Set, yc yamlConstraint, source string) error {
	loc := nodeLocation(yc.node, source)

	path, err := constraint.ParsePath(yc.Path)
	if err != nil {
		return newError(ErrorTypeValidation, loc, "bad constraint path %q: %v", yc.Path, err)
	}
	if len(yc.Require) == 0 {
		return newError(ErrorTypeValidation, loc, "path %q requires nothing", yc.Path)
	}

	constraints := make([]constraint.Constraint, 0, len(yc.Require))
	for _, req := range yc.Require {
		c := constraint.Constraint{Op: constraint.Operator(req.Op), Value: req.Value}
		if err := p.validateConstraint(c, nodeLocation(req.node, source)); err != nil {
			return err
		}
		constraints = append(constraints, c)
	}

	set.Require(path, constraints...)
	return nil
}

func (p *Parser) buildQuantifier(set *constraint.Set, yq yamlQuantifier, source string) error {
	loc := nodeLocation(yq.node, source)

	kind := constraint.QuantifierKind(yq.Kind)
	if kind != constraint.ForAll && kind != constraint.Exists {
		return newError(ErrorTypeValidation, loc, "unknown quantifier kind %q (want %q or %q)",
			yq.Kind, constraint.ForAll, constraint.Exists)
	}

	collection, err := constraint.ParsePath(yq.Collection)
	if err != nil {
		return newError(ErrorTypeValidation, loc, "bad collection path %q: %v", yq.Collection, err)
	}
	if len(yq.Where) == 0 {
		return newError(ErrorTypeValidation, loc, "quantifier over %q has an empty where clause", yq.Collection)
	}

	where := make([]constraint.ElementConstraint, 0, len(yq.Where))
	for _, w := range yq.Where {
		wloc := nodeLocation(w.node, source)

		rel, err := constraint.ParsePath(w.Path)
		if err != nil {
			return newError(ErrorTypeValidation, wloc, "bad element path %q: %v", w.Path, err)
		}

		c := constraint.Constraint{Op: constraint.Operator(w.Op), Value: w.Value}
		if err := p.validateConstraint(c, wloc); err != nil {
			return err
		}

		where = append(where, constraint.ElementConstraint{Path: rel, Constraint: c})
	}

	set.Quantify(constraint.Quantifier{Kind: kind, Collection: collection, Where: where})
	return nil
}

// validateConstraint rejects unknown operators and operand shapes that do
// not fit their operator, before a set ever reaches the analyzer.
func (p *Parser) validateConstraint(c constraint.Constraint, loc Location) error {
	if c.Op == "" {
		return newError(ErrorTypeValidation, loc, "missing operator")
	}
	if !p.reg.Known(c.Op) {
		return newError(ErrorTypeValidation, loc, "unknown operator %q", c.Op)
	}

	switch {
	case c.Op.IsOrdering():
		if !isInteger(c.Value) {
			return newError(ErrorTypeValidation, loc, "operator %q requires an integer value, got %T", c.Op, c.Value)
		}

	case c.Op.IsMembership():
		list, ok := c.Value.([]interface{})
		if !ok {
			return newError(ErrorTypeValidation, loc, "operator %q requires a list value, got %T", c.Op, c.Value)
		}
		if len(list) == 0 {
			return newError(ErrorTypeValidation, loc, "operator %q requires a non-empty list", c.Op)
		}
		for i, elem := range list {
			if !isScalar(elem) {
				return newError(ErrorTypeValidation, loc, "operator %q list element %d is not a scalar", c.Op, i)
			}
		}

	case c.Op.IsPattern():
		src, ok := c.Value.(string)
		if !ok {
			return newError(ErrorTypeValidation, loc, "operator %q requires a pattern string, got %T", c.Op, c.Value)
		}
		if _, err := regexp.Compile(src); err != nil {
			return newError(ErrorTypeValidation, loc, "pattern %q does not compile: %v", src, err)
		}
	}

	return nil
}

func isInteger(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, nil:
		return true
	default:
		return false
	}
}
