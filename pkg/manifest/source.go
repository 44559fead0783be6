package manifest

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source names where a manifest or value document is read from.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind selects the loader strategy for a Source.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindStdin SourceKind = "stdin"
)

// StdinRef is the reference ParseSource reads as standard input.
const StdinRef = "-"

// ErrEmptySource is returned by ParseSource for a blank reference.
var ErrEmptySource = errors.New("manifest: source reference is empty")

type sourceRef struct {
	kind     SourceKind
	location string
}

func (s sourceRef) Kind() SourceKind { return s.kind }
func (s sourceRef) Location() string { return s.location }
func (s sourceRef) String() string   { return string(s.kind) + ":" + s.location }

// ParseSource resolves a user supplied reference:
//
//	"-"                      standard input
//	"http://..." "https://"  URL
//	"file:///path"           file
//	anything else            file path
func ParseSource(ref string) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptySource
	}
	if ref == StdinRef {
		return SourceFromStdin(), nil
	}

	scheme, rest, ok := strings.Cut(ref, "://")
	if !ok {
		return SourceFromFile(ref), nil
	}
	switch strings.ToLower(scheme) {
	case "http", "https":
		return ParseURLSource(ref)
	case "file":
		if rest == "" || rest == "/" {
			return nil, fmt.Errorf("manifest: file reference %q has no path", ref)
		}
		return SourceFromFile(rest), nil
	default:
		return nil, fmt.Errorf("manifest: unsupported scheme %q in %q", scheme, ref)
	}
}

// SourceFromFile returns a Source for a path on the local file system.
func SourceFromFile(path string) Source {
	return sourceRef{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source for a name inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return sourceRef{kind: SourceKindFS, location: name}
}

// SourceFromStdin returns the standard input Source.
func SourceFromStdin() Source {
	return sourceRef{kind: SourceKindStdin, location: "stdin"}
}

// SourceFromURL is ParseURLSource for literals known to be valid. It panics
// on a bad URL.
func SourceFromURL(raw string) Source {
	src, err := ParseURLSource(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// ParseURLSource accepts absolute http and https URLs.
func ParseURLSource(raw string) (Source, error) {
	if raw == "" {
		return nil, ErrEmptySource
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest: invalid URL %q: %w", raw, err)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("manifest: URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("manifest: URL %q has no host", raw)
	}
	return sourceRef{kind: SourceKindURL, location: raw}, nil
}
