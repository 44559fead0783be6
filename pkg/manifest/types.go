package manifest

import (
	"github.com/goliatone/go-manifest/pkg/value"
)

// TypeDescription describes the shape and constraints of one named input.
// Inputs is only meaningful for group and group+; Options only for choice,
// multi-select and group-choice. Normalize clears whatever the kind does not
// define.
type TypeDescription struct {
	Kind        Kind
	Label       string
	Description string
	// Required is nil when the manifest leaves it unset, which counts as
	// required.
	Required *bool
	Default  value.Value
	Inputs   Schema
	Options  []Option
}

// Option is one selectable entry of a choice or group-choice input.
type Option struct {
	Value  string
	Label  string
	Inputs Schema
}

// IsRequired reports whether td is required. Only an explicit
// `required: false` makes an input optional.
func IsRequired(td TypeDescription) bool {
	return td.Required == nil || *td.Required
}

// Optional returns a copy of td with required set to false.
func (td TypeDescription) Optional() TypeDescription {
	f := false
	td.Required = &f
	return td
}

// WithKind returns a copy of td with its kind replaced.
func (td TypeDescription) WithKind(kind Kind) TypeDescription {
	td.Kind = kind
	return td
}

// Option looks up the option whose value equals name.
func (td TypeDescription) Option(name string) (Option, bool) {
	for _, opt := range td.Options {
		if opt.Value == name {
			return opt, true
		}
	}
	return Option{}, false
}

// Schema is an ordered mapping from input name to TypeDescription. The zero
// Schema is empty and ready to use.
type Schema struct {
	names   []string
	entries map[string]TypeDescription
}

// Field pairs an input name with its description; used to build schemas in
// declaration order.
type Field struct {
	Name string
	Type TypeDescription
}

// NewSchema builds a schema from fields in the given order. A repeated name
// replaces the earlier description but keeps its original position.
func NewSchema(fields ...Field) Schema {
	var s Schema
	for _, f := range fields {
		s = s.With(f.Name, f.Type)
	}
	return s
}

// With returns a copy of s with name bound to td.
func (s Schema) With(name string, td TypeDescription) Schema {
	out := Schema{
		names:   append([]string(nil), s.names...),
		entries: make(map[string]TypeDescription, len(s.entries)+1),
	}
	for key, entry := range s.entries {
		out.entries[key] = entry
	}
	if _, exists := out.entries[name]; !exists {
		out.names = append(out.names, name)
	}
	out.entries[name] = td
	return out
}

// Names returns the input names in declaration order.
func (s Schema) Names() []string {
	return append([]string(nil), s.names...)
}

// Get returns the description bound to name.
func (s Schema) Get(name string) (TypeDescription, bool) {
	td, ok := s.entries[name]
	return td, ok
}

// Len reports the number of inputs.
func (s Schema) Len() int {
	return len(s.names)
}

// Fields returns the inputs in declaration order.
func (s Schema) Fields() []Field {
	out := make([]Field, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, Field{Name: name, Type: s.entries[name]})
	}
	return out
}
