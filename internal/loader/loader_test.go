package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-manifest/pkg/manifest"
	"github.com/goliatone/go-manifest/pkg/value"
)

const schemaYAML = "volume: volume\nplate: container\n"

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.yaml")
	if err := os.WriteFile(path, []byte(schemaYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(manifest.NewLoaderOptions()).Load(context.Background(), manifest.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != schemaYAML {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"manifests/pcr.yaml": {Data: []byte(schemaYAML)},
	}
	l := New(manifest.NewLoaderOptions(manifest.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), manifest.SourceFromFS("manifests/pcr.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m, err := manifest.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Inputs.Len() != 2 {
		t.Fatalf("expected two inputs, got %v", m.Inputs.Names())
	}

	if _, err := l.Load(context.Background(), manifest.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoader_FSNotConfigured(t *testing.T) {
	_, err := New(manifest.NewLoaderOptions()).Load(context.Background(), manifest.SourceFromFS("a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "fs is nil") {
		t.Fatalf("expected fs error, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	var accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		if r.URL.Path != "/manifest.yaml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(schemaYAML))
	}))
	defer server.Close()

	l := New(manifest.NewLoaderOptions(
		manifest.WithHTTPFallback(true),
		manifest.WithRequestTimeout(5*time.Second),
	))

	doc, err := l.Load(context.Background(), manifest.SourceFromURL(server.URL+"/manifest.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != schemaYAML {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if !strings.HasPrefix(accept, "application/json") {
		t.Fatalf("unexpected accept header %q", accept)
	}

	_, err = l.Load(context.Background(), manifest.SourceFromURL(server.URL+"/other.yaml"))
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_HTTPWithClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"x": "string"}`))
	}))
	defer server.Close()

	l := New(manifest.NewLoaderOptions(manifest.WithHTTPClient(server.Client())))
	if _, err := l.Load(context.Background(), manifest.SourceFromURL(server.URL)); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoader_HTTPDisabled(t *testing.T) {
	_, err := New(manifest.NewLoaderOptions()).Load(context.Background(), manifest.SourceFromURL("https://example.com/m.json"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := fstest.MapFS{"a.yaml": {Data: []byte(schemaYAML)}}
	l := New(manifest.NewLoaderOptions(manifest.WithFileSystem(files)))
	if _, err := l.Load(ctx, manifest.SourceFromFS("a.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoader_EmptyPayload(t *testing.T) {
	files := fstest.MapFS{"empty.yaml": {Data: nil}}
	l := New(manifest.NewLoaderOptions(manifest.WithFileSystem(files)))
	if _, err := l.Load(context.Background(), manifest.SourceFromFS("empty.yaml")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestLoader_StdinRead(t *testing.T) {
	stdin := strings.NewReader(`{"plate": "ct1", "volume": "5:microliter"}`)
	l := New(manifest.NewLoaderOptions(manifest.WithStdin(stdin)))

	got, err := l.LoadValuesRef(context.Background(), "-")
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	want := value.MustFromAny(map[string]any{"plate": "ct1", "volume": "5:microliter"})
	if !got.Equal(want) {
		t.Fatalf("unexpected values: %v", got)
	}

	again, err := l.LoadValues(context.Background(), manifest.SourceFromStdin())
	if err != nil {
		t.Fatalf("second stdin load: %v", err)
	}
	if !again.Equal(want) {
		t.Fatalf("second stdin load differs: %v", again)
	}
}

func TestLoader_StdinNotConfigured(t *testing.T) {
	_, err := New(manifest.NewLoaderOptions()).Load(context.Background(), manifest.SourceFromStdin())
	if err == nil || !strings.Contains(err.Error(), "stdin is not configured") {
		t.Fatalf("expected stdin error, got %v", err)
	}
}

func TestLoader_ManifestRefDetection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "remote", "inputs": {"x": "string"}}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "inputs.yaml")
	if err := os.WriteFile(path, []byte(schemaYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(manifest.NewLoaderOptions(
		manifest.WithHTTPFallback(true),
		manifest.WithStdin(strings.NewReader("piped: compound\n")),
	))

	tests := []struct {
		name  string
		ref   string
		names []string
	}{
		{name: "path", ref: path, names: []string{"volume", "plate"}},
		{name: "file url", ref: "file://" + path, names: []string{"volume", "plate"}},
		{name: "http url", ref: server.URL + "/m.json", names: []string{"x"}},
		{name: "stdin", ref: "-", names: []string{"piped"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := l.LoadManifestRef(context.Background(), tc.ref)
			if err != nil {
				t.Fatalf("load %q: %v", tc.ref, err)
			}
			if diff := cmp.Diff(tc.names, m.Inputs.Names()); diff != "" {
				t.Fatalf("unexpected inputs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_ManifestRefErrors(t *testing.T) {
	l := New(manifest.NewLoaderOptions())

	if _, err := l.LoadManifestRef(context.Background(), "  "); !errors.Is(err, manifest.ErrEmptySource) {
		t.Fatalf("expected empty source error, got %v", err)
	}
	if _, err := l.LoadManifestRef(context.Background(), "ftp://example.com/m.yaml"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
	if _, err := l.LoadManifestRef(context.Background(), "https://example.com/m.yaml"); !errors.Is(err, ErrHTTPDisabled) {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoader_ManifestSanitized(t *testing.T) {
	files := fstest.MapFS{
		"m.yaml": {Data: []byte("inputs:\n  volume:\n    type: volume\n    label: <b>Volume</b><script>x()</script>\n")},
	}
	l := New(manifest.NewLoaderOptions(manifest.WithFileSystem(files)))

	m, err := l.LoadManifest(context.Background(), manifest.SourceFromFS("m.yaml"),
		manifest.WithSanitizer(manifest.HelpTextSanitizer()))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	td, _ := m.Inputs.Get("volume")
	if strings.Contains(td.Label, "script") {
		t.Fatalf("label not sanitized: %q", td.Label)
	}
}

func TestLoader_UnsupportedSource(t *testing.T) {
	if _, err := New(manifest.NewLoaderOptions()).Load(context.Background(), nil); !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("expected unsupported source error, got %v", err)
	}
}
