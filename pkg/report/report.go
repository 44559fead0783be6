// Package report renders validation, lint and entity reports as plain text.
package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-manifest/pkg/manifest"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const templateExt = ".tpl"

// Template names understood by Renderer.
const (
	TemplateErrors = "errors"
	TemplateLint   = "lint"
	TemplateIDs    = "ids"
)

// Entry is one flattened validation failure.
type Entry struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Entries flattens tree into entries sorted by path.
func Entries(tree manifest.ErrorTree) []Entry {
	messages := tree.Messages()
	paths := tree.Paths()
	out := make([]Entry, 0, len(paths))
	for _, path := range paths {
		out = append(out, Entry{Path: path, Message: messages[path]})
	}
	return out
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
}

// WithTemplates replaces the embedded templates. The file system must provide
// errors.tpl, lint.tpl and ids.tpl at its root.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// Renderer turns interpreter output into plain text reports using pongo2
// templates.
type Renderer struct {
	mu        sync.Mutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New constructs a Renderer backed by the embedded templates unless
// WithTemplates supplies others.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("report: embedded templates: %w", err)
		}
		cfg.templates = sub
	}

	registerFilters()
	return &Renderer{
		set:       pongo2.NewSet("manifest-report", pongo2.NewFSLoader(cfg.templates)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Errors renders the validation failures of tree.
func (r *Renderer) Errors(w io.Writer, source string, tree manifest.ErrorTree) error {
	return r.Render(w, TemplateErrors, pongo2.Context{
		"source":  source,
		"entries": Entries(tree),
	})
}

// Lint renders schema issues.
func (r *Renderer) Lint(w io.Writer, source string, issues []manifest.Issue) error {
	return r.Render(w, TemplateLint, pongo2.Context{
		"source": source,
		"issues": issues,
	})
}

// IDs renders referenced entities.
func (r *Renderer) IDs(w io.Writer, source string, refs []manifest.EntityRef) error {
	return r.Render(w, TemplateIDs, pongo2.Context{
		"source": source,
		"refs":   refs,
	})
}

// Render executes the named template. Trailing blank lines are collapsed so
// every report ends with exactly one newline.
func (r *Renderer) Render(w io.Writer, name string, data pongo2.Context) error {
	if r == nil || r.set == nil {
		return errors.New("report: renderer is nil")
	}
	tmpl, err := r.template(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return fmt.Errorf("report: execute %q: %w", name, err)
	}
	text := strings.TrimRight(buf.String(), "\n") + "\n"
	_, err = io.WriteString(w, text)
	return err
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	path := name
	if !strings.HasSuffix(path, templateExt) {
		path += templateExt
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", path, err)
	}
	r.templates[path] = tmpl
	return tmpl, nil
}

var filtersOnce sync.Once

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("pathlabel") {
			_ = pongo2.RegisterFilter("pathlabel", filterPathLabel)
		}
	})
}

// filterPathLabel renders "rows.1.count" as "rows > 2nd > count".
func filterPathLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(PathLabel(in.String())), nil
}

// PathLabel turns a dotted value path into a readable label, naming list
// elements by their ordinal position.
func PathLabel(path string) string {
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 {
			segments[i] = humanize.Ordinal(idx + 1)
		}
	}
	return strings.Join(segments, " > ")
}
