package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEqual_DeepStructure(t *testing.T) {
	left := MustFromAny(map[string]any{
		"a": []any{"x", 1, true},
		"b": map[string]any{"c": "d"},
	})
	right := MustFromAny(map[string]any{
		"b": map[string]any{"c": "d"},
		"a": []any{"x", 1.0, true},
	})
	if !left.Equal(right) {
		t.Fatalf("expected structurally equal values")
	}

	changed := right.MustSetIn([]string{"b", "c"}, String("e"))
	if left.Equal(changed) {
		t.Fatalf("expected nested change to break equality")
	}
	if !Absent().Equal(Value{}) {
		t.Fatalf("zero value should equal Absent")
	}
	if String("1").Equal(Number(1)) {
		t.Fatalf("string and number must not be equal")
	}
}

func TestMap_DropsAbsentEntries(t *testing.T) {
	v := Map(map[string]Value{"kept": String(""), "gone": Absent()})
	if got := v.Keys(); !cmp.Equal(got, []string{"kept"}) {
		t.Fatalf("unexpected keys: %v", got)
	}
	if v.Has("gone") {
		t.Fatalf("absent entry should not be stored")
	}
}

func TestSetIn_IsNonDestructive(t *testing.T) {
	original := MustFromAny(map[string]any{"steps": []any{map[string]any{"duration": "1:second"}}})

	updated, err := original.SetIn([]string{"steps", "0", "duration"}, String("2:second"))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := original.GetIn("steps", "0", "duration").Str(); got != "1:second" {
		t.Fatalf("original mutated: %q", got)
	}
	if got, _ := updated.GetIn("steps", "0", "duration").Str(); got != "2:second" {
		t.Fatalf("expected update, got %q", got)
	}
}

func TestSetIn_CreatesContainers(t *testing.T) {
	got, err := Absent().SetIn([]string{"groups", "1", "name"}, String("b"))
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	want := map[string]any{
		"groups": []any{nil, map[string]any{"name": "b"}},
	}
	if diff := cmp.Diff(want, got.Interface()); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestSetIn_RejectsScalarDescent(t *testing.T) {
	v := MustFromAny(map[string]any{"name": "x"})
	if _, err := v.SetIn([]string{"name", "first"}, String("y")); err == nil {
		t.Fatalf("expected error when descending into a string")
	}
	list := List(String("a"))
	if _, err := list.SetIn([]string{"key"}, String("y")); err == nil {
		t.Fatalf("expected error for non-numeric list segment")
	}
}

func TestSetIn_AbsentRemovesKey(t *testing.T) {
	v := MustFromAny(map[string]any{"a": "1", "b": "2"})
	got := v.MustSetIn([]string{"a"}, Absent())
	if got.Has("a") || !got.Has("b") {
		t.Fatalf("unexpected keys: %v", got.Keys())
	}
}

func TestMerge_OverWins(t *testing.T) {
	base := MustFromAny(map[string]any{
		"g":    map[string]any{"n": "", "m": "keep"},
		"list": []any{"a", "b"},
		"x":    "base",
	})
	over := MustFromAny(map[string]any{
		"g":    map[string]any{"n": "set"},
		"list": []any{"c"},
	})

	got := base.Merge(over)
	want := map[string]any{
		"g":    map[string]any{"n": "set", "m": "keep"},
		"list": []any{"c"},
		"x":    "base",
	}
	if diff := cmp.Diff(want, got.Interface()); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
	if !base.Merge(Absent()).Equal(base) {
		t.Fatalf("merging absent should keep the base")
	}
}

func TestText_Numbers(t *testing.T) {
	cases := map[string]Value{
		"3":    Int(3),
		"3.5":  Number(3.5),
		"true": Bool(true),
		"abc":  String("abc"),
	}
	for want, v := range cases {
		got, ok := v.Text()
		if !ok || got != want {
			t.Fatalf("Text(%v) = %q, %v; want %q", v.Interface(), got, ok, want)
		}
	}
	if _, ok := EmptyMap().Text(); ok {
		t.Fatalf("maps have no text form")
	}
}

func TestFloat(t *testing.T) {
	if f, ok := String(" 4 ").Float(); !ok || f != 4 {
		t.Fatalf("expected numeric string to parse, got %v %v", f, ok)
	}
	if _, ok := String("").Float(); ok {
		t.Fatalf("blank string should not parse")
	}
	if _, ok := String("four").Float(); ok {
		t.Fatalf("non-numeric string should not parse")
	}
}

func TestSplitPath(t *testing.T) {
	if got := SplitPath(".steps.0.duration."); !cmp.Equal(got, []string{"steps", "0", "duration"}) {
		t.Fatalf("unexpected segments: %v", got)
	}
	if got := SplitPath("  "); got != nil {
		t.Fatalf("expected nil for blank path, got %v", got)
	}
}
