package manifest

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Leaf messages produced by Errors.
const (
	MsgRequired   = "Required Field"
	MsgNotInteger = "Must be an integer"
	MsgNotNumber  = "Must be a number"
)

// ErrorTree mirrors the shape of a value tree. The zero ErrorTree means "no
// error". A leaf carries Message; group and group-choice nodes carry Fields;
// group+ and thermocycle nodes carry Items, one per element.
type ErrorTree struct {
	Message string
	Fields  map[string]ErrorTree
	Items   []ErrorTree
}

// Leaf builds a leaf error.
func Leaf(message string) ErrorTree {
	return ErrorTree{Message: message}
}

// IsLeaf reports whether e carries a message.
func (e ErrorTree) IsLeaf() bool {
	return e.Message != ""
}

// IsZero reports whether e is the no-error tree. Structural nodes with no
// children count as zero only when they carry no container at all; use
// HasErrors to ask whether anything beneath e failed.
func (e ErrorTree) IsZero() bool {
	return e.Message == "" && e.Fields == nil && e.Items == nil
}

// HasErrors reports whether e or any descendant carries a message.
func (e ErrorTree) HasErrors() bool {
	if e.Message != "" {
		return true
	}
	for _, child := range e.Fields {
		if child.HasErrors() {
			return true
		}
	}
	for _, item := range e.Items {
		if item.HasErrors() {
			return true
		}
	}
	return false
}

// Field returns the child tree for name.
func (e ErrorTree) Field(name string) ErrorTree {
	return e.Fields[name]
}

// Item returns the element tree at i.
func (e ErrorTree) Item(i int) ErrorTree {
	if i < 0 || i >= len(e.Items) {
		return ErrorTree{}
	}
	return e.Items[i]
}

// At resolves a dotted path of field names and element indexes.
func (e ErrorTree) At(path ...string) ErrorTree {
	current := e
	for _, segment := range path {
		if current.Items != nil {
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return ErrorTree{}
			}
			current = current.Item(idx)
			continue
		}
		current = current.Field(segment)
	}
	return current
}

// Messages flattens e into dotted paths ("steps.0.duration") mapped to their
// leaf message.
func (e ErrorTree) Messages() map[string]string {
	out := make(map[string]string)
	e.collect("", out)
	return out
}

// Paths returns the dotted paths of every leaf error in sorted order.
func (e ErrorTree) Paths() []string {
	messages := e.Messages()
	paths := make([]string, 0, len(messages))
	for path := range messages {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (e ErrorTree) collect(prefix string, out map[string]string) {
	if e.Message != "" {
		out[prefix] = e.Message
		return
	}
	for name, child := range e.Fields {
		child.collect(joinPath(prefix, name), out)
	}
	for i, item := range e.Items {
		item.collect(joinPath(prefix, strconv.Itoa(i)), out)
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// MarshalJSON encodes leaves as strings, fields as objects, items as arrays
// and the zero tree as null.
func (e ErrorTree) MarshalJSON() ([]byte, error) {
	switch {
	case e.Message != "":
		return json.Marshal(e.Message)
	case e.Items != nil:
		return json.Marshal(e.Items)
	case e.Fields != nil:
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, name := range names {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			body, err := e.Fields[name].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(body)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}
