package constraint

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// TypeConstraints is the metadata of one named type.
type TypeConstraints struct {
	Name        string
	Constraints *Constraints
}

// LoadYAML reads constraint declarations keyed by type name and property.
// Each property holds either a mapping or a list of single-entry mappings:
//
//	Book:
//	  title:
//	    nullable: false
//	    maxSize: 100
//	  pages:
//	    - range: [1, 5000]
//	  isbn:
//	    - matches: "^[0-9-]{10,17}$"
//
// Document order is kept for types, properties and constraints.
func LoadYAML(data []byte) ([]TypeConstraints, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of type names", ErrInvalidDocument, root.Line)
	}

	types := make([]TypeConstraints, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, props := root.Content[i].Value, root.Content[i+1]
		c, err := parseProperties(props)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		types = append(types, TypeConstraints{Name: name, Constraints: c})
	}
	return types, nil
}

// LoadYAMLFile reads name from fsys and parses it with LoadYAML.
func LoadYAMLFile(fsys fs.FS, name string) ([]TypeConstraints, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read constraints file: %w", err)
	}
	return LoadYAML(data)
}

func parseProperties(node *yaml.Node) (*Constraints, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of properties", ErrInvalidDocument, node.Line)
	}

	c := NewConstraints()
	for i := 0; i+1 < len(node.Content); i += 2 {
		property, body := node.Content[i].Value, node.Content[i+1]
		switch body.Kind {
		case yaml.MappingNode:
			if err := addEntries(c, property, body); err != nil {
				return nil, err
			}
		case yaml.SequenceNode:
			for _, item := range body.Content {
				if item.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("%w: line %d: property %s: expected a mapping", ErrInvalidDocument, item.Line, property)
				}
				if err := addEntries(c, property, item); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("%w: line %d: property %s: expected a mapping or a list", ErrInvalidDocument, body.Line, property)
		}
	}
	return c, nil
}

func addEntries(c *Constraints, property string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		kind, value := node.Content[i].Value, node.Content[i+1]
		d, err := descriptorFromNode(property, kind, value)
		if err != nil {
			return err
		}
		c.Add(d)
	}
	return nil
}

func descriptorFromNode(property, kind string, node *yaml.Node) (Descriptor, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return Descriptor{}, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, node.Line, err)
		}
		return newDescriptor(property, kind, v), nil
	case yaml.SequenceNode:
		var pair []any
		if err := node.Decode(&pair); err != nil || len(pair) != 2 {
			return Descriptor{}, fmt.Errorf("%w: line %d: %s of %s needs [min, max]", ErrInvalidDocument, node.Line, kind, property)
		}
		return bounds(property, kind, pair[0], pair[1]), nil
	case yaml.MappingNode:
		params := make(map[string]any)
		if err := node.Decode(&params); err != nil {
			return Descriptor{}, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, node.Line, err)
		}
		return Descriptor{Property: property, Kind: kind, Params: params}, nil
	}
	return Descriptor{}, fmt.Errorf("%w: line %d: unsupported value for %s", ErrInvalidDocument, node.Line, kind)
}
