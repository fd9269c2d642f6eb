package compile

import (
	"fmt"

	"meridian-hq/polaris/pkg/constraint"
)

// elementCheck is one compiled element constraint: the relative path to
// resolve inside each element plus the specialized predicate.
type elementCheck struct {
	rel constraint.Path
	chk check
}

// compileQuantifier emits the loop step for one quantifier node. Elements
// are visited one at a time with no intermediate buffering; the loop carries
// nothing beyond the cursor and the current element reference.
func compileQuantifier(q constraint.Quantifier, tmpl nodeTemplates) (step, error) {
	if len(q.Where) == 0 {
		return nil, fmt.Errorf("quantifier over %s has no element constraints", q.Collection)
	}

	checks := make([]elementCheck, len(q.Where))
	for i, ec := range q.Where {
		chk, err := compileCheck(q.Collection.Join(ec.Path), ec.Constraint)
		if err != nil {
			return nil, err
		}
		checks[i] = elementCheck{rel: ec.Path, chk: chk}
	}

	switch q.Kind {
	case constraint.ForAll:
		return compileForAll(q.Collection, checks, tmpl), nil
	case constraint.Exists:
		return compileExists(q.Collection, checks, tmpl), nil
	default:
		return nil, fmt.Errorf("unknown quantifier kind %q over %s", q.Kind, q.Collection)
	}
}

func compileForAll(collection constraint.Path, checks []elementCheck, tmpl nodeTemplates) step {
	// checkElement applies every element constraint to one element. Missing
	// element data defeats a universal claim exactly like missing document
	// data, so an absent field short-circuits to the open template.
	checkElement := func(elem interface{}) *constraint.Residual {
		for i := range checks {
			v, ok := constraint.ResolveIn(elem, checks[i].rel)
			if !ok {
				return tmpl.open
			}
			if !checks[i].chk(v) {
				return tmpl.conflicts[i](v)
			}
		}
		return nil
	}

	return func(doc constraint.Document) *constraint.Residual {
		col, ok := doc.Resolve(collection)
		if !ok {
			return tmpl.open
		}

		switch elems := col.(type) {
		case []interface{}:
			for _, e := range elems {
				if r := checkElement(e); r != nil {
					return r
				}
			}
		case []map[string]interface{}:
			for _, e := range elems {
				if r := checkElement(e); r != nil {
					return r
				}
			}
		case []constraint.Document:
			for _, e := range elems {
				if r := checkElement(e); r != nil {
					return r
				}
			}
		default:
			// Present but not a collection: no usable elements to quantify
			// over, treated like an absent collection.
			return tmpl.open
		}

		return nil
	}
}

func compileExists(collection constraint.Path, checks []elementCheck, tmpl nodeTemplates) step {
	// satisfies reports whether one element meets every element constraint.
	// An absent field simply means this element does not witness the claim.
	satisfies := func(elem interface{}) bool {
		for i := range checks {
			v, ok := constraint.ResolveIn(elem, checks[i].rel)
			if !ok || !checks[i].chk(v) {
				return false
			}
		}
		return true
	}

	return func(doc constraint.Document) *constraint.Residual {
		col, ok := doc.Resolve(collection)
		if !ok {
			return tmpl.open
		}

		switch elems := col.(type) {
		case []interface{}:
			for _, e := range elems {
				if satisfies(e) {
					return nil
				}
			}
		case []map[string]interface{}:
			for _, e := range elems {
				if satisfies(e) {
					return nil
				}
			}
		case []constraint.Document:
			for _, e := range elems {
				if satisfies(e) {
					return nil
				}
			}
		default:
			return tmpl.open
		}

		// Exhausted without a satisfying element.
		return tmpl.exhausted(col)
	}
}
