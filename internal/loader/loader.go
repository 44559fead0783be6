package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-manifest/pkg/manifest"
	"github.com/goliatone/go-manifest/pkg/value"
)

var (
	// ErrHTTPDisabled is returned for URL sources when no client is configured.
	ErrHTTPDisabled = errors.New("manifest loader: http support disabled")

	// ErrUnsupportedSource is returned for a nil source or an unknown kind.
	ErrUnsupportedSource = errors.New("manifest loader: unsupported source")
)

// fetchFunc reads the raw bytes behind a source location.
type fetchFunc func(ctx context.Context, location string) ([]byte, error)

// Loader reads manifests and value trees from files, an fs.FS, URLs or
// standard input. Each SourceKind maps to one fetcher.
type Loader struct {
	fetchers map[manifest.SourceKind]fetchFunc
}

var _ manifest.Loader = (*Loader)(nil)

// New builds a Loader. Kinds the options do not enable are still known and
// fail with a descriptive error when used.
func New(options manifest.LoaderOptions) *Loader {
	return &Loader{
		fetchers: map[manifest.SourceKind]fetchFunc{
			manifest.SourceKindFile:  readFile,
			manifest.SourceKindFS:    fsFetcher(options.FileSystem),
			manifest.SourceKindURL:   httpFetcher(options),
			manifest.SourceKindStdin: stdinFetcher(options.Stdin),
		},
	}
}

// Load returns the raw document behind src.
func (l *Loader) Load(ctx context.Context, src manifest.Source) (manifest.Document, error) {
	if src == nil {
		return manifest.Document{}, fmt.Errorf("%w: source is nil", ErrUnsupportedSource)
	}
	fetch, ok := l.fetchers[src.Kind()]
	if !ok {
		return manifest.Document{}, fmt.Errorf("%w: kind %q", ErrUnsupportedSource, src.Kind())
	}
	data, err := fetch(ctx, src.Location())
	if err != nil {
		return manifest.Document{}, err
	}
	return manifest.NewDocument(src, data)
}

// LoadManifest loads and decodes a manifest, or a bare inputs schema, from
// src. Decode options such as a sanitizer are applied.
func (l *Loader) LoadManifest(ctx context.Context, src manifest.Source, opts ...manifest.DecodeOption) (manifest.Manifest, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("load schema: %w", err)
	}
	return manifest.Decode(doc, opts...)
}

// LoadValues loads and decodes a JSON or YAML value tree from src.
func (l *Loader) LoadValues(ctx context.Context, src manifest.Source) (value.Value, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return value.Value{}, fmt.Errorf("load values: %w", err)
	}
	values, err := manifest.DecodeValues(doc.Raw())
	if err != nil {
		return value.Value{}, fmt.Errorf("decode values %s: %w", doc.Location(), err)
	}
	return values, nil
}

// LoadManifestRef parses ref with manifest.ParseSource and loads a manifest.
func (l *Loader) LoadManifestRef(ctx context.Context, ref string, opts ...manifest.DecodeOption) (manifest.Manifest, error) {
	src, err := manifest.ParseSource(ref)
	if err != nil {
		return manifest.Manifest{}, err
	}
	return l.LoadManifest(ctx, src, opts...)
}

// LoadValuesRef parses ref with manifest.ParseSource and loads a value tree.
func (l *Loader) LoadValuesRef(ctx context.Context, ref string) (value.Value, error) {
	src, err := manifest.ParseSource(ref)
	if err != nil {
		return value.Value{}, err
	}
	return l.LoadValues(ctx, src)
}
