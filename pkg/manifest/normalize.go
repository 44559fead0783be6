package manifest

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-manifest/pkg/value"
)

// Normalize turns any accepted spelling of a type description into its
// canonical structured form. A bare string (or Kind) is shorthand for
// {kind: name}. Structured input may be a TypeDescription, a value.Value,
// decoded JSON (map[string]any) or a YAML node; both "type" and "kind" name
// the kind. Normalize never fails: unrecognised input yields a description
// with an empty kind, and unknown kind names are kept verbatim.
func Normalize(raw any) TypeDescription {
	switch typed := raw.(type) {
	case TypeDescription:
		return clean(typed)
	case *TypeDescription:
		if typed == nil {
			return TypeDescription{}
		}
		return clean(*typed)
	case Kind:
		return TypeDescription{Kind: typed}
	case string:
		return TypeDescription{Kind: Kind(typed)}
	case value.Value:
		return clean(descriptionFromValue(typed))
	case map[string]any:
		v, err := value.FromAny(typed)
		if err != nil {
			return TypeDescription{}
		}
		return clean(descriptionFromValue(v))
	case *yaml.Node:
		td, err := descriptionFromNode(typed)
		if err != nil {
			return TypeDescription{}
		}
		return clean(td)
	default:
		return TypeDescription{}
	}
}

// clean drops the fields the kind does not define so later passes never read
// them.
func clean(td TypeDescription) TypeDescription {
	if !td.Kind.HasInputs() {
		td.Inputs = Schema{}
	}
	if !td.Kind.HasOptions() {
		td.Options = nil
	} else if td.Kind != KindGroupChoice && len(td.Options) > 0 {
		options := make([]Option, len(td.Options))
		for i, opt := range td.Options {
			opt.Inputs = Schema{}
			options[i] = opt
		}
		td.Options = options
	}
	return td
}

func descriptionFromValue(v value.Value) TypeDescription {
	if s, ok := v.Str(); ok {
		return TypeDescription{Kind: Kind(s)}
	}
	if !v.IsMap() {
		return TypeDescription{}
	}

	td := TypeDescription{Default: v.Get("default")}
	td.Kind = Kind(firstText(v, "type", "kind"))
	td.Label = firstText(v, "label")
	td.Description = firstText(v, "description")
	if required, ok := v.Get("required").Flag(); ok {
		td.Required = &required
	}
	if inputs := v.Get("inputs"); inputs.IsMap() {
		td.Inputs = schemaFromValue(inputs)
	}
	if options := v.Get("options"); options.IsList() {
		for _, item := range options.Items() {
			td.Options = append(td.Options, optionFromValue(item))
		}
	}
	return td
}

func schemaFromValue(v value.Value) Schema {
	var s Schema
	for _, name := range v.Keys() {
		s = s.With(name, Normalize(v.Get(name)))
	}
	return s
}

func optionFromValue(v value.Value) Option {
	if text, ok := v.Text(); ok {
		return Option{Value: text}
	}
	opt := Option{
		Value: firstText(v, "value"),
		Label: firstText(v, "label", "name"),
	}
	if inputs := v.Get("inputs"); inputs.IsMap() {
		opt.Inputs = schemaFromValue(inputs)
	}
	return opt
}

func firstText(v value.Value, keys ...string) string {
	for _, key := range keys {
		if text, ok := v.Get(key).Text(); ok {
			return text
		}
	}
	return ""
}
