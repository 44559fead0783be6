package manifest

import "github.com/goliatone/go-manifest/pkg/value"

// DefaultsOption configures Defaults.
type DefaultsOption func(*defaultsConfig)

type defaultsConfig struct {
	csvUpload bool
}

// WithCSVUpload suppresses leaf defaults while still building the group,
// group+ and group-choice structure. Used when values arrive from an uploaded
// sheet and scalar placeholders would only be noise.
func WithCSVUpload() DefaultsOption {
	return func(cfg *defaultsConfig) {
		cfg.csvUpload = true
	}
}

// Defaults computes the default value tree for every input of schema. The
// result is always a map; inputs whose default is absent are omitted.
func Defaults(schema Schema, opts ...DefaultsOption) value.Value {
	cfg := defaultsConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg.schema(schema)
}

// DefaultFor computes the default for a single type description.
func DefaultFor(td TypeDescription, opts ...DefaultsOption) value.Value {
	cfg := defaultsConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg.description(Normalize(td))
}

// NaturalDefault returns the built-in default for kind, used when a
// description declares none. Kinds without one yield absent.
func NaturalDefault(kind Kind) value.Value {
	switch kind {
	case KindGroup:
		return value.EmptyMap()
	case KindGroupList:
		return value.List(value.EmptyMap())
	case KindContainerList, KindCompoundList, KindAliquotList, KindMultiSelect:
		return value.EmptyList()
	case KindAliquotListList:
		return value.List(value.EmptyList())
	case KindString:
		return value.String("")
	case KindBool:
		return value.Bool(false)
	case KindThermocycle:
		return naturalThermocycle()
	default:
		return value.Absent()
	}
}

func (cfg defaultsConfig) schema(schema Schema) value.Value {
	fields := make(map[string]value.Value, schema.Len())
	for _, f := range schema.Fields() {
		fields[f.Name] = cfg.description(f.Type)
	}
	return value.Map(fields)
}

func (cfg defaultsConfig) description(td TypeDescription) value.Value {
	switch td.Kind.Class() {
	case ClassGroup:
		return cfg.schema(td.Inputs).Merge(declaredOrNatural(td))
	case ClassGroupList:
		children := cfg.schema(td.Inputs)
		parent := declaredOrNatural(td)
		if !parent.IsList() {
			return parent
		}
		items := parent.Items()
		for i, item := range items {
			items[i] = children.Merge(item)
		}
		return value.List(items...)
	case ClassGroupChoice:
		return cfg.groupChoice(td)
	default:
		if cfg.csvUpload {
			return value.Absent()
		}
		return declaredOrNatural(td)
	}
}

func (cfg defaultsConfig) groupChoice(td TypeDescription) value.Value {
	inputs := make(map[string]value.Value, len(td.Options))
	for _, opt := range td.Options {
		inputs[opt.Value] = cfg.schema(opt.Inputs)
	}
	return value.Map(map[string]value.Value{
		"value":  td.Default,
		"inputs": value.Map(inputs),
	})
}

// declaredOrNatural takes an explicit default literally, falling back to the
// kind's natural default.
func declaredOrNatural(td TypeDescription) value.Value {
	if !td.Default.IsAbsent() {
		return td.Default
	}
	return NaturalDefault(td.Kind)
}
