package manifest

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans author-supplied label and description text.
type Sanitizer interface {
	Sanitize(string) string
}

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// HelpTextSanitizer returns the shared policy for labels and descriptions.
// Inline formatting and links survive; any other markup is stripped.
func HelpTextSanitizer() Sanitizer {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("a", "b", "strong", "i", "em", "code", "sub", "sup", "br", "p", "ul", "ol", "li")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		helpPolicy = policy
	})
	return helpPolicy
}

// Sanitize returns a copy of schema with every label and description passed
// through s, including nested inputs and options.
func Sanitize(schema Schema, s Sanitizer) Schema {
	if s == nil {
		return schema
	}
	var out Schema
	for _, f := range schema.Fields() {
		out = out.With(f.Name, sanitizeDescription(f.Type, s))
	}
	return out
}

func sanitizeDescription(td TypeDescription, s Sanitizer) TypeDescription {
	td.Label = sanitizeText(td.Label, s)
	td.Description = sanitizeText(td.Description, s)
	if td.Inputs.Len() > 0 {
		td.Inputs = Sanitize(td.Inputs, s)
	}
	if len(td.Options) > 0 {
		options := make([]Option, len(td.Options))
		for i, opt := range td.Options {
			opt.Label = sanitizeText(opt.Label, s)
			if opt.Inputs.Len() > 0 {
				opt.Inputs = Sanitize(opt.Inputs, s)
			}
			options[i] = opt
		}
		td.Options = options
	}
	return td
}

func sanitizeText(raw string, s Sanitizer) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(s.Sanitize(trimmed))
}
