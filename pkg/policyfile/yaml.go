package policyfile

import "gopkg.in/yaml.v3"

// yamlFile is the intermediate structure a policy file decodes into before
// transformation to a constraint.Set. Each nested entry captures its YAML
// node so errors can cite exact positions.
type yamlFile struct {
	Name        string           `yaml:"name"`
	Version     string           `yaml:"version"`
	Description string           `yaml:"description"`
	Constraints []yamlConstraint `yaml:"constraints"`
	Quantifiers []yamlQuantifier `yaml:"quantifiers"`
}

// yamlConstraint is one scalar path with its ordered requirements.
type yamlConstraint struct {
	Path    string        `yaml:"path"`
	Require []yamlRequire `yaml:"require"`

	node *yaml.Node
}

// UnmarshalYAML captures the node position alongside the decoded fields.
func (c *yamlConstraint) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlConstraint
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.node = node
	return nil
}

// yamlRequire is one operator/value pair.
type yamlRequire struct {
	Op    string      `yaml:"op"`
	Value interface{} `yaml:"value"`

	node *yaml.Node
}

func (r *yamlRequire) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlRequire
	if err := node.Decode((*plain)(r)); err != nil {
		return err
	}
	r.node = node
	return nil
}

// yamlQuantifier is a forall/exists block over a collection.
type yamlQuantifier struct {
	Kind       string      `yaml:"kind"`
	Collection string      `yaml:"collection"`
	Where      []yamlWhere `yaml:"where"`

	node *yaml.Node
}

func (q *yamlQuantifier) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlQuantifier
	if err := node.Decode((*plain)(q)); err != nil {
		return err
	}
	q.node = node
	return nil
}

// yamlWhere is one element constraint: a path relative to each element plus
// an operator/value pair.
type yamlWhere struct {
	Path  string      `yaml:"path"`
	Op    string      `yaml:"op"`
	Value interface{} `yaml:"value"`

	node *yaml.Node
}

func (w *yamlWhere) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlWhere
	if err := node.Decode((*plain)(w)); err != nil {
		return err
	}
	w.node = node
	return nil
}

// nodeLocation extracts the source position of a YAML node.
func nodeLocation(node *yaml.Node, file string) Location {
	if node == nil {
		return Location{File: file}
	}
	return Location{File: file, Line: node.Line, Column: node.Column}
}
