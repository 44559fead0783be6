package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-manifest/pkg/value"
)

var errEmptySchema = errors.New("manifest: schema payload is empty")

// DecodeSchema parses a JSON or YAML mapping of input name to type
// description. Declaration order is preserved.
func DecodeSchema(data []byte) (Schema, error) {
	node, err := parseNode(data)
	if err != nil {
		return Schema{}, err
	}
	return schemaFromNode(node)
}

// DecodeValues parses a JSON or YAML value tree.
func DecodeValues(data []byte) (value.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return value.EmptyMap(), nil
	}
	return value.Parse(data)
}

func parseNode(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptySchema
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: parse: invalid JSON or YAML: %w", err)
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, errEmptySchema
		}
		return doc.Content[0], nil
	}
	return &doc, nil
}

func schemaFromNode(node *yaml.Node) (Schema, error) {
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return Schema{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return Schema{}, fmt.Errorf("manifest: line %d: inputs must be a mapping", node.Line)
	}
	var s Schema
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		td, err := descriptionFromNode(node.Content[i+1])
		if err != nil {
			return Schema{}, fmt.Errorf("manifest: input %q: %w", name, err)
		}
		s = s.With(name, clean(td))
	}
	return s, nil
}

func descriptionFromNode(node *yaml.Node) (TypeDescription, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return TypeDescription{Kind: Kind(node.Value)}, nil
	case yaml.MappingNode:
	default:
		return TypeDescription{}, fmt.Errorf("line %d: type description must be a kind name or a mapping", node.Line)
	}

	var td TypeDescription
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		child := resolveAlias(node.Content[i+1])
		switch key {
		case "type", "kind":
			td.Kind = Kind(child.Value)
		case "label":
			td.Label = child.Value
		case "description":
			td.Description = child.Value
		case "required":
			var required bool
			if err := child.Decode(&required); err != nil {
				return TypeDescription{}, fmt.Errorf("line %d: required must be a boolean", child.Line)
			}
			td.Required = &required
		case "default":
			def, err := value.FromNode(child)
			if err != nil {
				return TypeDescription{}, err
			}
			td.Default = def
		case "inputs":
			inputs, err := schemaFromNode(child)
			if err != nil {
				return TypeDescription{}, err
			}
			td.Inputs = inputs
		case "options":
			options, err := optionsFromNode(child)
			if err != nil {
				return TypeDescription{}, err
			}
			td.Options = options
		}
	}
	return td, nil
}

func optionsFromNode(node *yaml.Node) ([]Option, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: options must be a sequence", node.Line)
	}
	options := make([]Option, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		if item.Kind == yaml.ScalarNode {
			options = append(options, Option{Value: item.Value})
			continue
		}
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: option must be a scalar or a mapping", item.Line)
		}
		var opt Option
		for i := 0; i+1 < len(item.Content); i += 2 {
			child := resolveAlias(item.Content[i+1])
			switch item.Content[i].Value {
			case "value":
				opt.Value = child.Value
			case "label", "name":
				if opt.Label == "" {
					opt.Label = child.Value
				}
			case "inputs":
				inputs, err := schemaFromNode(child)
				if err != nil {
					return nil, err
				}
				opt.Inputs = inputs
			}
		}
		options = append(options, opt)
	}
	return options, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	}
	return node
}

// UnmarshalYAML decodes a schema mapping, keeping declaration order.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := schemaFromNode(node)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// UnmarshalJSON decodes a schema object, keeping declaration order.
func (s *Schema) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeSchema(data)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// MarshalJSON encodes the schema as an object in declaration order.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(s.entries[name])
		if err != nil {
			return nil, fmt.Errorf("manifest: encode input %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML accepts the shorthand and structured forms.
func (td *TypeDescription) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := descriptionFromNode(node)
	if err != nil {
		return err
	}
	*td = clean(decoded)
	return nil
}

// UnmarshalJSON accepts the shorthand and structured forms.
func (td *TypeDescription) UnmarshalJSON(data []byte) error {
	node, err := parseNode(data)
	if err != nil {
		return err
	}
	return td.UnmarshalYAML(node)
}

type typeDescriptionJSON struct {
	Type        Kind         `json:"type"`
	Label       string       `json:"label,omitempty"`
	Description string       `json:"description,omitempty"`
	Required    *bool        `json:"required,omitempty"`
	Default     *value.Value `json:"default,omitempty"`
	Inputs      *Schema      `json:"inputs,omitempty"`
	Options     []optionJSON `json:"options,omitempty"`
}

type optionJSON struct {
	Value  string  `json:"value"`
	Label  string  `json:"label,omitempty"`
	Inputs *Schema `json:"inputs,omitempty"`
}

// MarshalJSON encodes the structured form, using "type" for the kind as
// protocol manifests do.
func (td TypeDescription) MarshalJSON() ([]byte, error) {
	out := typeDescriptionJSON{
		Type:        td.Kind,
		Label:       td.Label,
		Description: td.Description,
		Required:    td.Required,
	}
	if !td.Default.IsAbsent() {
		def := td.Default
		out.Default = &def
	}
	if td.Kind.HasInputs() {
		inputs := td.Inputs
		out.Inputs = &inputs
	}
	for _, opt := range td.Options {
		encoded := optionJSON{Value: opt.Value, Label: opt.Label}
		if opt.Inputs.Len() > 0 {
			inputs := opt.Inputs
			encoded.Inputs = &inputs
		}
		out.Options = append(out.Options, encoded)
	}
	return json.Marshal(out)
}
