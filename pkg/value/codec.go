package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromAny converts decoded JSON/YAML data (maps, slices, scalars) into a
// Value. Nil becomes absent. Unsupported types report an error.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Absent(), nil
	case Value:
		return typed, nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case float64:
		return Number(typed), nil
	case float32:
		return Number(float64(typed)), nil
	case int:
		return Number(float64(typed)), nil
	case int64:
		return Number(float64(typed)), nil
	case int32:
		return Number(float64(typed)), nil
	case uint64:
		return Number(float64(typed)), nil
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: number %q: %w", typed, err)
		}
		return Number(f), nil
	case []any:
		items := make([]Value, len(typed))
		for i, item := range typed {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Value{typ: TypeList, items: items}, nil
	case []string:
		items := make([]Value, len(typed))
		for i, item := range typed {
			items[i] = String(item)
		}
		return Value{typ: TypeList, items: items}, nil
	case map[string]any:
		fields := make(map[string]Value, len(typed))
		for key, item := range typed {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			fields[key] = converted
		}
		return Map(fields), nil
	case map[string]Value:
		return Map(typed), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported type %T", raw)
	}
}

// MustFromAny is FromAny for literals known to convert. It panics on error.
func MustFromAny(raw any) Value {
	v, err := FromAny(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Interface converts v back into plain Go data. Absent becomes nil.
func (v Value) Interface() any {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeNumber:
		return v.num
	case TypeBool:
		return v.flag
	case TypeList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case TypeMap:
		out := make(map[string]any, len(v.fields))
		for key, field := range v.fields {
			out[key] = field.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v with map keys in sorted order. Absent encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.typ {
	case TypeAbsent:
		buf.WriteString("null")
	case TypeString:
		encoded, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case TypeNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return fmt.Errorf("value: cannot encode %v as JSON", v.num)
		}
		buf.WriteString(strconv.FormatFloat(v.num, 'f', -1, 64))
	case TypeBool:
		buf.WriteString(strconv.FormatBool(v.flag))
	case TypeList:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case TypeMap:
		keys := make([]string, 0, len(v.fields))
		for key := range v.fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encoded, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(encoded)
			buf.WriteByte(':')
			if err := v.fields[key].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// UnmarshalJSON decodes any JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("value: decode json: %w", err)
	}
	converted, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = converted
	return nil
}

// UnmarshalYAML decodes a YAML node into v.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	converted, err := FromNode(node)
	if err != nil {
		return err
	}
	*v = converted
	return nil
}

// MarshalYAML encodes v through its plain Go form.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// FromNode converts a YAML node into a Value. Scalars keep YAML's typing:
// unquoted numbers and booleans become numbers and bools, null becomes absent.
func FromNode(node *yaml.Node) (Value, error) {
	if node == nil {
		return Absent(), nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Absent(), nil
		}
		return FromNode(node.Content[0])
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, len(node.Content))
		for i, child := range node.Content {
			converted, err := FromNode(child)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Value{typ: TypeList, items: items}, nil
	case yaml.MappingNode:
		fields := make(map[string]Value, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			converted, err := FromNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			fields[node.Content[i].Value] = converted
		}
		return Map(fields), nil
	case yaml.ScalarNode:
		return scalarFromNode(node)
	default:
		return Value{}, fmt.Errorf("value: unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

func scalarFromNode(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Absent(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("value: line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("value: line %d: %w", node.Line, err)
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}

// Parse decodes JSON or YAML text into a Value. JSON is tried first, then
// YAML, mirroring how UI schema documents are accepted in either format.
func Parse(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Absent(), nil
	}
	var v Value
	if err := json.Unmarshal(trimmed, &v); err == nil {
		return v, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(trimmed, &node); err != nil {
		return Value{}, fmt.Errorf("value: parse: invalid JSON or YAML: %w", err)
	}
	return FromNode(&node)
}
