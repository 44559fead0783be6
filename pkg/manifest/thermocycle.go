package manifest

import "github.com/goliatone/go-manifest/pkg/value"

// thermocycleStep describes one step of a cycle group. Only duration is
// required; a step holds either a fixed temperature or a gradient.
var thermocycleStep = NewSchema(
	Field{Name: "duration", Type: TypeDescription{Kind: KindTime}},
	Field{Name: "temperature", Type: TypeDescription{Kind: KindTemperature}.Optional()},
	Field{Name: "gradient", Type: TypeDescription{
		Kind: KindGroup,
		Inputs: NewSchema(
			Field{Name: "top", Type: TypeDescription{Kind: KindTemperature}.Optional()},
			Field{Name: "bottom", Type: TypeDescription{Kind: KindTemperature}.Optional()},
		),
	}.Optional()},
)

// thermocycleGroup is the element schema of a thermocycle value: a number of
// cycles over an ordered list of steps.
var thermocycleGroup = NewSchema(
	Field{Name: "cycles", Type: TypeDescription{Kind: KindInteger}},
	Field{Name: "steps", Type: TypeDescription{Kind: KindGroupList, Inputs: thermocycleStep}},
)

// ThermocycleSchema returns the built-in element schema used for thermocycle
// inputs.
func ThermocycleSchema() Schema {
	return thermocycleGroup
}

// asThermocycleGroups rewrites a thermocycle description into the equivalent
// group+ description, keeping requiredness and default.
func asThermocycleGroups(td TypeDescription) TypeDescription {
	return TypeDescription{
		Kind:        KindGroupList,
		Label:       td.Label,
		Description: td.Description,
		Required:    td.Required,
		Default:     td.Default,
		Inputs:      thermocycleGroup,
	}
}

func naturalThermocycle() value.Value {
	return value.List(value.Map(map[string]value.Value{
		"cycles": value.Int(1),
		"steps":  value.List(value.EmptyMap()),
	}))
}
