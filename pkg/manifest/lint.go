package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// Issue is one problem found by Lint, located by a dotted path through the
// schema ("sample.options.dilute.inputs.volume").
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + " -> " + i.Message
}

// Lint reports authoring mistakes the interpreter itself tolerates: unknown
// kinds (a typo is otherwise indistinguishable from an unconstrained input),
// composite kinds missing their inputs or options, duplicate option values and
// group-choice defaults that name no option. Issues are sorted by path.
func Lint(schema Schema) []Issue {
	var issues []Issue
	lintSchema(&issues, nil, schema)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues
}

func lintSchema(issues *[]Issue, path []string, schema Schema) {
	for _, f := range schema.Fields() {
		lintDescription(issues, appendPath(path, f.Name), f.Type)
	}
}

func lintDescription(issues *[]Issue, path []string, td TypeDescription) {
	report := func(format string, args ...any) {
		*issues = append(*issues, Issue{
			Path:    strings.Join(path, "."),
			Message: fmt.Sprintf(format, args...),
		})
	}

	if td.Kind == "" {
		report("missing kind")
		return
	}
	if !td.Kind.Known() {
		report("unknown kind %q", td.Kind)
		return
	}

	switch td.Kind.Class() {
	case ClassGroup, ClassGroupList:
		if td.Inputs.Len() == 0 {
			report("%s declares no inputs", td.Kind)
		}
		lintSchema(issues, appendPath(path, "inputs"), td.Inputs)
	}

	if !td.Kind.HasOptions() {
		return
	}
	if len(td.Options) == 0 {
		report("%s declares no options", td.Kind)
		return
	}
	seen := make(map[string]struct{}, len(td.Options))
	for _, opt := range td.Options {
		if _, dup := seen[opt.Value]; dup {
			report("duplicate option %q", opt.Value)
		}
		seen[opt.Value] = struct{}{}
		if td.Kind == KindGroupChoice {
			lintSchema(issues, appendPath(path, "options", opt.Value, "inputs"), opt.Inputs)
		}
	}
	if td.Kind == KindGroupChoice && !td.Default.IsAbsent() {
		name, _ := td.Default.Text()
		if _, ok := td.Option(name); !ok {
			report("default %q names no option", name)
		}
	}
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}
