package manifest

import "testing"

func TestFilterForClone_ResetsCSVTables(t *testing.T) {
	schema := mustSchema(t, `{
  "table": {"kind": "csv-table", "default": [{"well": "A1"}]},
  "bare": "csv-table",
  "name": "string"
}`)

	got := FilterForClone(schema, mustValues(t, `{
  "table": [{"well": "B2"}, {"well": "C3"}],
  "bare": [{"well": "D4"}],
  "name": "run 1"
}`))

	assertValue(t, mustValues(t, `{"table": [{"well": "A1"}], "name": "run 1"}`), got)
}

func TestFilterForClone_RecursesIntoGroups(t *testing.T) {
	schema := mustSchema(t, `{
  "g": {"kind": "group", "inputs": {"t": {"kind": "csv-table", "default": []}, "n": "string"}},
  "rows": {"kind": "group+", "inputs": {"t": "csv-table", "v": "volume"}}
}`)

	got := FilterForClone(schema, mustValues(t, `{
  "g": {"t": [{"a": 1}], "n": "keep"},
  "rows": [{"t": [{"a": 2}], "v": "1:microliter"}, {"v": "2:microliter"}]
}`))

	want := mustValues(t, `{
  "g": {"t": [], "n": "keep"},
  "rows": [{"v": "1:microliter"}, {"v": "2:microliter"}]
}`)
	assertValue(t, want, got)
}

func TestFilterForClone_GroupChoiceSynthesizesMissingOptions(t *testing.T) {
	schema := mustSchema(t, `{
  "mode": {
    "kind": "group-choice",
    "options": [
      {"value": "a", "inputs": {"p": "string", "t": {"kind": "csv-table", "default": "none"}}},
      {"value": "b", "inputs": {"q": {"kind": "bool", "default": true}}}
    ]
  }
}`)

	got := FilterForClone(schema, mustValues(t, `{
  "mode": {"value": "a", "inputs": {"a": {"p": "x", "t": [{"row": 1}]}}}
}`))

	want := mustValues(t, `{
  "mode": {"value": "a", "inputs": {"a": {"p": "x", "t": "none"}, "b": {"q": true}}}
}`)
	assertValue(t, want, got)
}

func TestFilterForClone_KeepsUndeclaredKeys(t *testing.T) {
	schema := mustSchema(t, `{"name": "string"}`)

	got := FilterForClone(schema, mustValues(t, `{"name": "a", "legacy": 1}`))
	assertValue(t, mustValues(t, `{"name": "a", "legacy": 1}`), got)
}

func TestFilterForClone_AbsentStaysAbsent(t *testing.T) {
	schema := mustSchema(t, `{
  "g": {"kind": "group", "inputs": {"n": "string"}},
  "mode": {"kind": "group-choice", "options": [{"value": "a"}]}
}`)

	got := FilterForClone(schema, mustValues(t, `{}`))
	assertValue(t, mustValues(t, `{}`), got)
}

func TestFilterForClone_MismatchedShapesPassThrough(t *testing.T) {
	schema := mustSchema(t, `{
  "g": {"kind": "group", "inputs": {"t": "csv-table"}},
  "rows": {"kind": "group+", "inputs": {"t": "csv-table"}},
  "pick": {"kind": "group-choice", "options": [{"value": "a", "inputs": {"t": "csv-table"}}]}
}`)

	values := mustValues(t, `{"g": "oops", "rows": ["x", {"t": [1]}], "pick": 3}`)
	want := mustValues(t, `{"g": "oops", "rows": ["x", {}], "pick": 3}`)
	assertValue(t, want, FilterForClone(schema, values))
}
