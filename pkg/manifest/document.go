package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"
)

// Document wraps a raw manifest payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("manifest: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("manifest: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Manifest is the decoded form of a protocol manifest: identity fields plus
// the inputs schema the interpreter works on.
type Manifest struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Inputs      Schema `json:"inputs" yaml:"inputs"`
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	sanitizer Sanitizer
}

// WithSanitizer passes labels and descriptions through s after decoding.
func WithSanitizer(s Sanitizer) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.sanitizer = s
	}
}

// Decode parses a manifest document (JSON or YAML). A document without an
// "inputs" key is read as a bare inputs schema.
func Decode(doc Document, opts ...DecodeOption) (Manifest, error) {
	cfg := decodeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	node, err := parseNode(doc.raw)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: decode %s: %w", doc.Location(), err)
	}

	var out Manifest
	if hasKey(node, "inputs") {
		if err := node.Decode(&out); err != nil {
			return Manifest{}, fmt.Errorf("manifest: decode %s: %w", doc.Location(), err)
		}
	} else {
		inputs, err := schemaFromNode(node)
		if err != nil {
			return Manifest{}, fmt.Errorf("manifest: decode %s: %w", doc.Location(), err)
		}
		out.Inputs = inputs
	}

	if cfg.sanitizer != nil {
		out.Inputs = Sanitize(out.Inputs, cfg.sanitizer)
		out.Description = sanitizeText(out.Description, cfg.sanitizer)
	}
	return out, nil
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Loader fetches manifest documents from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures a Loader implementation.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	Stdin             io.Reader
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem lets the loader resolve SourceKindFS locations.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileSystem = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(o *LoaderOptions) {
		o.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client.
func WithHTTPFallback(enabled bool) LoaderOption {
	return func(o *LoaderOptions) {
		o.AllowHTTPFallback = enabled
	}
}

// WithRequestTimeout bounds HTTP fetches.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		o.RequestTimeout = timeout
	}
}

// WithStdin lets the loader resolve SourceKindStdin from r.
func WithStdin(r io.Reader) LoaderOption {
	return func(o *LoaderOptions) {
		o.Stdin = r
	}
}

// NewLoaderOptions applies opts over the zero options.
func NewLoaderOptions(opts ...LoaderOption) LoaderOptions {
	var out LoaderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}
