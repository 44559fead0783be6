package value

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Type enumerates the shapes a Value can take.
type Type uint8

const (
	TypeAbsent Type = iota
	TypeString
	TypeNumber
	TypeBool
	TypeList
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	default:
		return "absent"
	}
}

// Value is an immutable node of a JSON-like value tree. The zero Value is
// absent, which is distinct from an empty list or an empty map. Constructors
// copy their inputs and accessors never expose internal storage, so a Value
// can be shared freely between goroutines.
type Value struct {
	typ    Type
	str    string
	num    float64
	flag   bool
	items  []Value
	fields map[string]Value
}

// Absent returns the not-present value.
func Absent() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{typ: TypeString, str: s} }

// Number wraps a float64.
func Number(n float64) Value { return Value{typ: TypeNumber, num: n} }

// Int wraps an int as a number.
func Int(n int) Value { return Number(float64(n)) }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{typ: TypeBool, flag: b} }

// List builds a list value. Absent elements are kept so indexes line up with
// the caller's sequence.
func List(items ...Value) Value {
	out := make([]Value, len(items))
	copy(out, items)
	return Value{typ: TypeList, items: out}
}

// EmptyList returns a list with no elements.
func EmptyList() Value { return Value{typ: TypeList, items: []Value{}} }

// Map builds a map value. Absent entries are dropped: a key mapped to an
// absent value is the same as a missing key.
func Map(fields map[string]Value) Value {
	out := make(map[string]Value, len(fields))
	for key, v := range fields {
		if v.IsAbsent() {
			continue
		}
		out[key] = v
	}
	return Value{typ: TypeMap, fields: out}
}

// EmptyMap returns a map with no entries.
func EmptyMap() Value { return Value{typ: TypeMap, fields: map[string]Value{}} }

// Type reports the shape of v.
func (v Value) Type() Type { return v.typ }

// IsAbsent reports whether v is the not-present value.
func (v Value) IsAbsent() bool { return v.typ == TypeAbsent }

func (v Value) IsString() bool { return v.typ == TypeString }
func (v Value) IsNumber() bool { return v.typ == TypeNumber }
func (v Value) IsBool() bool   { return v.typ == TypeBool }
func (v Value) IsList() bool   { return v.typ == TypeList }
func (v Value) IsMap() bool    { return v.typ == TypeMap }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.typ == TypeString }

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) { return v.num, v.typ == TypeNumber }

// Flag returns the boolean payload and whether v is a bool.
func (v Value) Flag() (bool, bool) { return v.flag, v.typ == TypeBool }

// Text renders scalar values as strings. Numbers use the shortest decimal
// form so 3 renders as "3" rather than "3.000000". Lists, maps and absent
// values report false.
func (v Value) Text() (string, bool) {
	switch v.typ {
	case TypeString:
		return v.str, true
	case TypeNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	case TypeBool:
		return strconv.FormatBool(v.flag), true
	default:
		return "", false
	}
}

// Float converts numbers and numeric strings to float64. Blank strings and
// non-numeric values report false.
func (v Value) Float() (float64, bool) {
	switch v.typ {
	case TypeNumber:
		return v.num, true
	case TypeString:
		trimmed := strings.TrimSpace(v.str)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Len reports the number of list elements or map entries.
func (v Value) Len() int {
	switch v.typ {
	case TypeList:
		return len(v.items)
	case TypeMap:
		return len(v.fields)
	default:
		return 0
	}
}

// Items returns a copy of the list elements, or nil when v is not a list.
func (v Value) Items() []Value {
	if v.typ != TypeList {
		return nil
	}
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

// Index returns the element at i, or absent when out of range or not a list.
func (v Value) Index(i int) Value {
	if v.typ != TypeList || i < 0 || i >= len(v.items) {
		return Absent()
	}
	return v.items[i]
}

// Get returns the entry stored under key, or absent.
func (v Value) Get(key string) Value {
	if v.typ != TypeMap {
		return Absent()
	}
	return v.fields[key]
}

// Has reports whether a map value holds key.
func (v Value) Has(key string) bool {
	if v.typ != TypeMap {
		return false
	}
	_, ok := v.fields[key]
	return ok
}

// Keys returns the map keys in sorted order.
func (v Value) Keys() []string {
	if v.typ != TypeMap {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for key := range v.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns a shallow copy of the map entries, or nil when v is not a map.
func (v Value) Fields() map[string]Value {
	if v.typ != TypeMap {
		return nil
	}
	out := make(map[string]Value, len(v.fields))
	for key, field := range v.fields {
		out[key] = field
	}
	return out
}

// With returns a copy of the map value with key set to field. Setting an
// absent field removes the key. Non-map receivers are treated as empty maps.
func (v Value) With(key string, field Value) Value {
	out := make(map[string]Value, len(v.fields)+1)
	if v.typ == TypeMap {
		for k, existing := range v.fields {
			out[k] = existing
		}
	}
	if field.IsAbsent() {
		delete(out, key)
	} else {
		out[key] = field
	}
	return Value{typ: TypeMap, fields: out}
}

// Equal reports deep structural equality.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeAbsent:
		return true
	case TypeString:
		return v.str == other.str
	case TypeNumber:
		return v.num == other.num
	case TypeBool:
		return v.flag == other.flag
	case TypeList:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for key, field := range v.fields {
			theirs, ok := other.fields[key]
			if !ok || !field.Equal(theirs) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Merge deep-merges over on top of v. Maps merge key by key with over's
// entries winning; any other combination returns over unless it is absent.
func (v Value) Merge(over Value) Value {
	if over.IsAbsent() {
		return v
	}
	if v.typ != TypeMap || over.typ != TypeMap {
		return over
	}
	out := make(map[string]Value, len(v.fields)+len(over.fields))
	for key, field := range v.fields {
		out[key] = field
	}
	for key, field := range over.fields {
		if base, ok := out[key]; ok {
			out[key] = base.Merge(field)
			continue
		}
		out[key] = field
	}
	return Value{typ: TypeMap, fields: out}
}
