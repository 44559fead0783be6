package manifest

import "github.com/goliatone/go-manifest/pkg/value"

// FilterForClone prepares a captured value tree for resubmission. Values pass
// through unchanged except csv-table inputs, which are reset to the schema's
// literal default so uploaded tables are never carried forward. Groups,
// group lists and group choices are walked the way Defaults walks them, and a
// group-choice option with no captured sub-tree gets its defaults filled in.
// Value keys the schema does not declare, and values whose shape does not
// match their kind, are kept as they are.
func FilterForClone(schema Schema, values value.Value) value.Value {
	fields := values.Fields()
	if fields == nil {
		fields = make(map[string]value.Value, schema.Len())
	}
	for _, f := range schema.Fields() {
		fields[f.Name] = filterValue(f.Type, values.Get(f.Name))
	}
	return value.Map(fields)
}

func filterValue(td TypeDescription, v value.Value) value.Value {
	switch td.Kind.Class() {
	case ClassCSVTable:
		return td.Default
	case ClassGroup:
		if !v.IsMap() {
			return v
		}
		return FilterForClone(td.Inputs, v)
	case ClassGroupList:
		if !v.IsList() {
			return v
		}
		items := v.Items()
		for i, item := range items {
			if item.IsMap() {
				items[i] = FilterForClone(td.Inputs, item)
			}
		}
		return value.List(items...)
	case ClassGroupChoice:
		return filterGroupChoice(td, v)
	default:
		return v
	}
}

func filterGroupChoice(td TypeDescription, v value.Value) value.Value {
	if !v.IsMap() {
		return v
	}
	captured := v.Get("inputs")
	inputs := captured.Fields()
	if inputs == nil {
		inputs = make(map[string]value.Value, len(td.Options))
	}
	for _, opt := range td.Options {
		sub := captured.Get(opt.Value)
		switch {
		case sub.IsMap():
			inputs[opt.Value] = FilterForClone(opt.Inputs, sub)
			continue
		case !sub.IsAbsent():
			continue
		}
		inputs[opt.Value] = Defaults(opt.Inputs)
	}
	return v.With("inputs", value.Map(inputs))
}
