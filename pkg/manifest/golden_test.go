package manifest_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-manifest/pkg/manifest"
	"github.com/goliatone/go-manifest/pkg/testsupport"
	"github.com/goliatone/go-manifest/pkg/value"
)

func TestPCRManifest_DefaultsGolden(t *testing.T) {
	m := testsupport.MustLoadManifest(t, filepath.Join("testdata", "pcr_manifest.yaml"))

	got := manifest.Defaults(m.Inputs)
	golden := filepath.Join("testdata", "pcr_defaults.golden.json")
	testsupport.WriteGolden(t, golden, got)

	want := testsupport.MustLoadValues(t, golden)
	if diff := testsupport.CompareValues(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestPCRManifest_ErrorsGolden(t *testing.T) {
	m := testsupport.MustLoadManifest(t, filepath.Join("testdata", "pcr_manifest.yaml"))
	values := testsupport.MustLoadValues(t, filepath.Join("testdata", "pcr_values.yaml"))

	tree := manifest.Errors(m.Inputs, values)
	golden := filepath.Join("testdata", "pcr_errors.golden.json")
	testsupport.WriteGolden(t, golden, tree)

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal errors: %v", err)
	}
	got, err := value.Parse(data)
	if err != nil {
		t.Fatalf("parse errors: %v", err)
	}
	want := testsupport.MustLoadValues(t, golden)
	if diff := testsupport.CompareValues(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestPCRManifest_EntityIDsAndClone(t *testing.T) {
	m := testsupport.MustLoadManifest(t, filepath.Join("testdata", "pcr_manifest.yaml"))
	values := testsupport.MustLoadValues(t, filepath.Join("testdata", "pcr_values.yaml"))

	if diff := cmp.Diff([]string{"ct1", "ct2"}, manifest.EntityIDs(m.Inputs, values)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}

	cloned := manifest.FilterForClone(m.Inputs, values)
	if diff := testsupport.CompareValues(values, cloned); diff != "" {
		t.Fatalf("clone without tables should keep values (-want +got):\n%s", diff)
	}
}
