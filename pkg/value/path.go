package value

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitPath breaks a dotted path ("steps.0.duration") into segments.
func SplitPath(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), ".")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, ".")
}

// GetIn resolves a path of map keys and list indexes. Missing segments yield
// absent.
func (v Value) GetIn(path ...string) Value {
	current := v
	for _, segment := range path {
		switch current.typ {
		case TypeMap:
			current = current.fields[segment]
		case TypeList:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return Absent()
			}
			current = current.Index(idx)
		default:
			return Absent()
		}
		if current.IsAbsent() {
			return current
		}
	}
	return current
}

// SetIn returns a copy of v with the node at path replaced by next. The
// receiver is never modified. Intermediate containers are created as needed:
// a numeric next segment creates a list, anything else a map. Lists grow with
// absent padding when an index lies past the end.
func (v Value) SetIn(path []string, next Value) (Value, error) {
	if len(path) == 0 {
		return next, nil
	}
	segment := path[0]
	rest := path[1:]

	container := v
	if container.IsAbsent() {
		if _, err := strconv.Atoi(segment); err == nil {
			container = EmptyList()
		} else {
			container = EmptyMap()
		}
	}

	switch container.typ {
	case TypeMap:
		child, err := container.fields[segment].SetIn(rest, next)
		if err != nil {
			return Value{}, err
		}
		return container.With(segment, child), nil
	case TypeList:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return Value{}, fmt.Errorf("value: expected numeric segment, got %q", segment)
		}
		if idx < 0 {
			return Value{}, fmt.Errorf("value: negative index %d", idx)
		}
		items := container.Items()
		if idx >= len(items) {
			items = append(items, make([]Value, idx+1-len(items))...)
		}
		child, err := items[idx].SetIn(rest, next)
		if err != nil {
			return Value{}, err
		}
		items[idx] = child
		return Value{typ: TypeList, items: items}, nil
	default:
		return Value{}, fmt.Errorf("value: cannot descend into %s at %q", container.typ, segment)
	}
}

// MustSetIn is SetIn for paths known to be valid. It panics on error.
func (v Value) MustSetIn(path []string, next Value) Value {
	out, err := v.SetIn(path, next)
	if err != nil {
		panic(err)
	}
	return out
}
