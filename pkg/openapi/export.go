package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-manifest/pkg/manifest"
	"github.com/goliatone/go-manifest/pkg/value"
)

// KindExtension records the manifest kind on every exported schema so the
// original type survives a round trip through OpenAPI tooling.
const KindExtension = "x-manifest-kind"

// Quantity values are exported as strings matching this pattern.
const quantityPattern = `^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?:[^\s:]+$`

// Export describes a manifest schema as an OpenAPI object schema. Required
// inputs are listed in Required; labels become titles; explicit defaults are
// carried over literally.
func Export(schema manifest.Schema) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Properties = make(openapi3.Schemas, schema.Len())
	for _, f := range schema.Fields() {
		out.Properties[f.Name] = openapi3.NewSchemaRef("", exportDescription(f.Type))
		if manifest.IsRequired(f.Type) {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

// ExportManifest wraps Export with the manifest's identity.
func ExportManifest(m manifest.Manifest) *openapi3.Schema {
	out := Export(m.Inputs)
	out.Title = m.Name
	out.Description = m.Description
	return out
}

func exportDescription(td manifest.TypeDescription) *openapi3.Schema {
	out := exportShape(td)
	out.Title = td.Label
	out.Description = td.Description
	switch {
	case td.Default.IsAbsent():
	case td.Kind == manifest.KindGroupChoice:
		// the default names an option, so it belongs on the selector
		if selector := out.Properties["value"]; selector != nil && selector.Value != nil {
			selector.Value.Default = td.Default.Interface()
		}
	default:
		out.Default = td.Default.Interface()
	}
	if out.Extensions == nil {
		out.Extensions = make(map[string]any, 1)
	}
	out.Extensions[KindExtension] = string(td.Kind)
	return out
}

func exportShape(td manifest.TypeDescription) *openapi3.Schema {
	switch td.Kind.Class() {
	case manifest.ClassInteger:
		return openapi3.NewIntegerSchema()
	case manifest.ClassQuantity:
		s := openapi3.NewStringSchema().WithPattern(quantityPattern)
		s.Format = string(td.Kind)
		return s
	case manifest.ClassScalar:
		return scalarShape(td)
	case manifest.ClassCSVTable:
		return openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema())
	case manifest.ClassEntity:
		return entityShape(td.Kind)
	case manifest.ClassEntityList:
		return openapi3.NewArraySchema().WithItems(entityShape(td.Kind.Singular()))
	case manifest.ClassAliquotListList:
		inner := openapi3.NewArraySchema().WithItems(entityShape(manifest.KindAliquot))
		return openapi3.NewArraySchema().WithItems(inner)
	case manifest.ClassGroup:
		return Export(td.Inputs)
	case manifest.ClassGroupList:
		return openapi3.NewArraySchema().WithItems(Export(td.Inputs))
	case manifest.ClassGroupChoice:
		return groupChoiceShape(td)
	case manifest.ClassThermocycle:
		return openapi3.NewArraySchema().WithItems(Export(manifest.ThermocycleSchema()))
	default:
		return openapi3.NewSchema()
	}
}

func scalarShape(td manifest.TypeDescription) *openapi3.Schema {
	switch td.Kind {
	case manifest.KindDecimal:
		return openapi3.NewFloat64Schema()
	case manifest.KindBool:
		return openapi3.NewBoolSchema()
	case manifest.KindChoice:
		return openapi3.NewStringSchema().WithEnum(optionValues(td.Options)...)
	case manifest.KindMultiSelect:
		items := openapi3.NewStringSchema().WithEnum(optionValues(td.Options)...)
		return openapi3.NewArraySchema().WithItems(items)
	default:
		return openapi3.NewStringSchema()
	}
}

func entityShape(kind manifest.Kind) *openapi3.Schema {
	if kind == manifest.KindAliquot {
		s := openapi3.NewObjectSchema().
			WithProperty(manifest.AliquotContainerKey, openapi3.NewStringSchema())
		s.Required = []string{manifest.AliquotContainerKey}
		return s
	}
	s := openapi3.NewStringSchema()
	s.Format = string(kind) + "-id"
	return s
}

// groupChoiceShape exports every option's inputs. Only the selected option is
// validated by the interpreter, so option sub-schemas carry no required lists.
func groupChoiceShape(td manifest.TypeDescription) *openapi3.Schema {
	inputs := openapi3.NewObjectSchema()
	inputs.Properties = make(openapi3.Schemas, len(td.Options))
	for _, opt := range td.Options {
		inputs.Properties[opt.Value] = openapi3.NewSchemaRef("", dropRequired(Export(opt.Inputs)))
	}
	return openapi3.NewObjectSchema().
		WithProperty("value", openapi3.NewStringSchema().WithEnum(optionValues(td.Options)...)).
		WithProperty("inputs", inputs)
}

func dropRequired(s *openapi3.Schema) *openapi3.Schema {
	s.Required = nil
	for _, ref := range s.Properties {
		if ref != nil && ref.Value != nil {
			dropRequired(ref.Value)
		}
	}
	if s.Items != nil && s.Items.Value != nil {
		dropRequired(s.Items.Value)
	}
	return s
}

func optionValues(options []manifest.Option) []any {
	out := make([]any, len(options))
	for i, opt := range options {
		out[i] = opt.Value
	}
	return out
}

// VisitValues checks a value tree against an exported schema using
// kin-openapi's JSON validator.
func VisitValues(schema *openapi3.Schema, values value.Value, opts ...openapi3.SchemaValidationOption) error {
	return schema.VisitJSON(values.Interface(), opts...)
}
