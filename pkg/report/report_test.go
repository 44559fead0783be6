package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-manifest/pkg/manifest"
	"github.com/goliatone/go-manifest/pkg/testsupport"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderer_Errors(t *testing.T) {
	tree := manifest.ErrorTree{Fields: map[string]manifest.ErrorTree{
		"name": manifest.Leaf(manifest.MsgRequired),
		"rows": {Items: []manifest.ErrorTree{
			{},
			{Fields: map[string]manifest.ErrorTree{"count": manifest.Leaf(manifest.MsgNotInteger)}},
		}},
		"mode": {Fields: map[string]manifest.ErrorTree{
			"inputs": {Fields: map[string]manifest.ErrorTree{
				"b": {Fields: map[string]manifest.ErrorTree{"q": manifest.Leaf(manifest.MsgNotNumber)}},
			}},
		}},
	}}

	var buf bytes.Buffer
	if err := newRenderer(t).Errors(&buf, "inputs.yaml", tree); err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "errors.golden")
	if testsupport.WriteMaybeGolden(t, golden, buf.Bytes()) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, buf.String()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_ErrorsClean(t *testing.T) {
	var buf bytes.Buffer
	if err := newRenderer(t).Errors(&buf, "inputs.yaml", manifest.ErrorTree{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "inputs.yaml: all inputs valid\n" {
		t.Fatalf("unexpected report %q", got)
	}
}

func TestRenderer_LintKeepsQuotes(t *testing.T) {
	issues := []manifest.Issue{
		{Path: "g", Message: "group declares no inputs"},
		{Path: "mode", Message: `default "c" names no option`},
	}

	var buf bytes.Buffer
	if err := newRenderer(t).Lint(&buf, "inputs.yaml", issues); err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "lint.golden")
	if testsupport.WriteMaybeGolden(t, golden, buf.Bytes()) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, buf.String()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_IDs(t *testing.T) {
	refs := []manifest.EntityRef{
		{Kind: manifest.EntityContainer, ID: "ct1"},
		{Kind: manifest.EntityCompound, ID: "cmp1"},
	}

	var buf bytes.Buffer
	if err := newRenderer(t).IDs(&buf, "run.json", refs); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "run.json: 2 referenced entities\n  container ct1\n  compound cmp1\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected report:\nwant %q\n got %q", want, got)
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"errors.tpl": {Data: []byte("{{ source }}={{ entries|length }}")},
	}
	r, err := New(WithTemplates(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Errors(&buf, "x", manifest.ErrorTree{Fields: map[string]manifest.ErrorTree{"a": manifest.Leaf(manifest.MsgRequired)}}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "x=1\n" {
		t.Fatalf("unexpected report %q", got)
	}

	if err := r.Lint(&buf, "x", nil); err == nil || !strings.Contains(err.Error(), "lint.tpl") {
		t.Fatalf("expected missing template error, got %v", err)
	}
}

func TestPathLabel(t *testing.T) {
	cases := map[string]string{
		"name":                   "name",
		"rows.0.count":           "rows > 1st > count",
		"pcr.1.steps.2.duration": "pcr > 2nd > steps > 3rd > duration",
	}
	for in, want := range cases {
		if got := PathLabel(in); got != want {
			t.Fatalf("PathLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
