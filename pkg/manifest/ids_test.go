package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEntityIDs_DeduplicatesInOrder(t *testing.T) {
	schema := mustSchema(t, `{"c": "container+"}`)

	got := EntityIDs(schema, mustValues(t, `{"c": ["ct1", "ct2", "ct1"]}`))
	if diff := cmp.Diff([]string{"ct1", "ct2"}, got); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
}

func TestEntityIDs_WalksNestedKinds(t *testing.T) {
	schema := mustSchema(t, `{
  "source": "container",
  "reagent": "compound",
  "wells": "aliquot+",
  "plates": "aliquot++",
  "g": {"kind": "group", "inputs": {"dest": "container"}},
  "rows": {"kind": "group+", "inputs": {"mix": "compound+"}},
  "mode": {
    "kind": "group-choice",
    "options": [
      {"value": "a", "inputs": {"hidden": "container"}},
      {"value": "b", "inputs": {"shown": "container"}}
    ]
  },
  "note": "string"
}`)

	values := mustValues(t, `{
  "source": "ct1",
  "reagent": "cmp1",
  "wells": [{"containerId": "ct2", "well": "A1"}, {"containerId": "ct1"}],
  "plates": [[{"containerId": "ct3"}], [{"containerId": "ct4"}]],
  "g": {"dest": "ct5"},
  "rows": [{"mix": ["cmp2"]}, {"mix": ["cmp1", "cmp3"]}],
  "mode": {"value": "b", "inputs": {"a": {"hidden": "ct9"}, "b": {"shown": "ct6"}}},
  "note": "ct7"
}`)

	want := []string{"ct1", "cmp1", "ct2", "ct3", "ct4", "ct5", "cmp2", "cmp3", "ct6"}
	if diff := cmp.Diff(want, EntityIDs(schema, values)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
}

func TestEntityIDs_SkipsAbsentAndBlank(t *testing.T) {
	schema := mustSchema(t, `{
  "plate": "container",
  "wells": "aliquot+",
  "g": {"kind": "group", "inputs": {"dest": "container"}},
  "list": "container+"
}`)

	got := EntityIDs(schema, mustValues(t, `{"wells": [{}, {"containerId": " "}], "list": ["", null, "ct1"]}`))
	if diff := cmp.Diff([]string{"ct1"}, got); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}

	if got := EntityIDs(schema, mustValues(t, `{}`)); len(got) != 0 {
		t.Fatalf("expected no ids, got %v", got)
	}
}

func TestEntityRefs_KeepsKind(t *testing.T) {
	schema := mustSchema(t, `{"plate": "container", "same": "compound", "wells": "aliquot+"}`)

	got := EntityRefs(schema, mustValues(t, `{"plate": "x1", "same": "x1", "wells": [{"containerId": "x1"}]}`))
	want := []EntityRef{
		{Kind: EntityContainer, ID: "x1"},
		{Kind: EntityCompound, ID: "x1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected refs (-want +got):\n%s", diff)
	}
}
