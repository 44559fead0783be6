package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-manifest/pkg/manifest"
	"github.com/goliatone/go-manifest/pkg/value"
)

const defaultMaxAttempts = 5

// Filler walks a manifest schema and asks for every input through a
// PromptDriver. Each answer is checked with manifest.ErrorFor before it is
// accepted, so the collected tree validates the same way a submitted form
// would.
type Filler struct {
	driver      PromptDriver
	maxAttempts int
}

// New constructs a Filler with the survey driver unless one is supplied.
func New(options ...Option) *Filler {
	f := &Filler{maxAttempts: defaultMaxAttempts}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver()
	}
	return f
}

// Fill collects values for schema. Prefilled values seed the prompts on top
// of the schema defaults.
func (f *Filler) Fill(ctx context.Context, schema manifest.Schema, prefill value.Value) (value.Value, error) {
	if ctx == nil {
		return value.Value{}, errors.New("prompt: context is required")
	}
	s := &session{
		filler: f,
		values: manifest.Defaults(schema).Merge(prefill),
	}
	if err := s.schema(ctx, nil, schema); err != nil {
		return value.Value{}, err
	}
	return s.values, nil
}

type session struct {
	filler *Filler
	values value.Value
}

func (s *session) get(path []string) value.Value {
	return s.values.GetIn(path...)
}

func (s *session) set(path []string, v value.Value) error {
	next, err := s.values.SetIn(path, v)
	if err != nil {
		return fmt.Errorf("prompt: set %s: %w", strings.Join(path, "."), err)
	}
	s.values = next
	return nil
}

func (s *session) info(ctx context.Context, format string, args ...any) {
	_ = s.filler.driver.Info(ctx, fmt.Sprintf(format, args...))
}

func (s *session) schema(ctx context.Context, path []string, schema manifest.Schema) error {
	for _, f := range schema.Fields() {
		if err := s.field(ctx, childPath(path, f.Name), f.Type); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) field(ctx context.Context, path []string, td manifest.TypeDescription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch td.Kind.Class() {
	case manifest.ClassGroup:
		return s.schema(ctx, path, td.Inputs)
	case manifest.ClassGroupList:
		return s.groupList(ctx, path, td, td.Inputs)
	case manifest.ClassThermocycle:
		return s.groupList(ctx, path, td, manifest.ThermocycleSchema())
	case manifest.ClassGroupChoice:
		return s.groupChoice(ctx, path, td)
	case manifest.ClassEntityList, manifest.ClassAliquotListList:
		return s.entityList(ctx, path, td)
	case manifest.ClassCSVTable:
		s.info(ctx, "Skipping %s: tables are uploaded, not typed", label(path, td))
		return nil
	}
	switch td.Kind {
	case manifest.KindBool:
		return s.confirm(ctx, path, td)
	case manifest.KindChoice:
		return s.choice(ctx, path, td)
	case manifest.KindMultiSelect:
		return s.multiSelect(ctx, path, td)
	default:
		return s.input(ctx, path, td)
	}
}

// input asks for a text answer and converts it according to the kind. Empty
// answers to optional inputs clear the value.
func (s *session) input(ctx context.Context, path []string, td manifest.TypeDescription) error {
	current := s.get(path)
	if td.Kind == manifest.KindAliquot {
		current = current.Get(manifest.AliquotContainerKey)
	}
	defaultText, _ := current.Text()

	for attempt := 0; attempt < s.filler.maxAttempts; attempt++ {
		answer, err := s.filler.driver.Input(ctx, InputConfig{
			Message: label(path, td),
			Default: defaultText,
			Help:    help(td),
		})
		if err != nil {
			return err
		}
		v := convertAnswer(td.Kind, answer)
		if tree := manifest.ErrorFor(td, v); tree.IsLeaf() {
			s.info(ctx, "Invalid %s: %s", strings.Join(path, "."), tree.Message)
			continue
		}
		return s.set(path, v)
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, strings.Join(path, "."))
}

func (s *session) confirm(ctx context.Context, path []string, td manifest.TypeDescription) error {
	current, _ := s.get(path).Flag()
	answer, err := s.filler.driver.Confirm(ctx, ConfirmConfig{
		Message: label(path, td),
		Default: current,
		Help:    help(td),
	})
	if err != nil {
		return err
	}
	return s.set(path, value.Bool(answer))
}

func (s *session) choice(ctx context.Context, path []string, td manifest.TypeDescription) error {
	options := optionLabels(td.Options)
	current, _ := s.get(path).Text()
	for attempt := 0; attempt < s.filler.maxAttempts; attempt++ {
		idx, err := s.filler.driver.Select(ctx, SelectConfig{
			Message:      label(path, td),
			Options:      options,
			DefaultIndex: optionIndex(td.Options, current),
			Help:         help(td),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(td.Options) {
			s.info(ctx, "Invalid %s selection", strings.Join(path, "."))
			continue
		}
		return s.set(path, value.String(td.Options[idx].Value))
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, strings.Join(path, "."))
}

func (s *session) multiSelect(ctx context.Context, path []string, td manifest.TypeDescription) error {
	var defaults []int
	for _, item := range s.get(path).Items() {
		if text, ok := item.Text(); ok {
			if idx := optionIndex(td.Options, text); idx >= 0 {
				defaults = append(defaults, idx)
			}
		}
	}
	indices, err := s.filler.driver.MultiSelect(ctx, SelectConfig{
		Message:  label(path, td),
		Options:  optionLabels(td.Options),
		Defaults: defaults,
		Help:     help(td),
	})
	if err != nil {
		return err
	}
	selected := make([]value.Value, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(td.Options) {
			selected = append(selected, value.String(td.Options[idx].Value))
		}
	}
	return s.set(path, value.List(selected...))
}

func (s *session) groupChoice(ctx context.Context, path []string, td manifest.TypeDescription) error {
	if len(td.Options) == 0 {
		return nil
	}
	if !manifest.IsRequired(td) {
		pick, err := s.filler.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Choose %s?", label(path, td)),
			Default: !s.get(childPath(path, "value")).IsAbsent(),
		})
		if err != nil {
			return err
		}
		if !pick {
			return s.set(childPath(path, "value"), value.Absent())
		}
	}
	current, _ := s.get(childPath(path, "value")).Text()
	idx, err := s.filler.driver.Select(ctx, SelectConfig{
		Message:      label(path, td),
		Options:      optionLabels(td.Options),
		DefaultIndex: optionIndex(td.Options, current),
		Help:         help(td),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(td.Options) {
		return fmt.Errorf("prompt: invalid selection for %s", strings.Join(path, "."))
	}
	opt := td.Options[idx]
	if err := s.set(childPath(path, "value"), value.String(opt.Value)); err != nil {
		return err
	}
	return s.schema(ctx, childPath(path, "inputs", opt.Value), opt.Inputs)
}

// groupList fills existing elements first, then offers to append more. At
// least one element is kept for required inputs.
func (s *session) groupList(ctx context.Context, path []string, td manifest.TypeDescription, inputs manifest.Schema) error {
	count := s.get(path).Len()
	if count == 0 && manifest.IsRequired(td) {
		if err := s.set(childPath(path, "0"), manifest.Defaults(inputs)); err != nil {
			return err
		}
		count = 1
	}
	for i := 0; ; i++ {
		if i >= count {
			more, err := s.filler.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Add a %s %s?", humanize.Ordinal(i+1), label(path, td)),
			})
			if err != nil {
				return err
			}
			if !more {
				break
			}
			if err := s.set(childPath(path, strconv.Itoa(i)), manifest.Defaults(inputs)); err != nil {
				return err
			}
			count++
		}
		if err := s.schema(ctx, childPath(path, strconv.Itoa(i)), inputs); err != nil {
			return err
		}
	}
	if count == 0 {
		return s.set(path, value.EmptyList())
	}
	return nil
}

// entityList collects identifiers one by one; aliquot++ asks for one list of
// aliquots per entry.
func (s *session) entityList(ctx context.Context, path []string, td manifest.TypeDescription) error {
	element := td.WithKind(td.Kind.Singular())
	element.Label = label(path, td)
	element.Required = nil
	element.Default = value.Absent()

	existing := s.get(path).Items()
	if err := s.set(path, value.EmptyList()); err != nil {
		return err
	}
	for i := 0; ; i++ {
		if i >= len(existing) {
			more, err := s.filler.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Add a %s %s?", humanize.Ordinal(i+1), label(path, element)),
				Default: i == 0 && manifest.IsRequired(td),
			})
			if err != nil {
				return err
			}
			if !more {
				break
			}
		} else if err := s.set(childPath(path, strconv.Itoa(i)), existing[i]); err != nil {
			return err
		}
		if err := s.field(ctx, childPath(path, strconv.Itoa(i)), element); err != nil {
			return err
		}
	}
	return nil
}

func convertAnswer(kind manifest.Kind, answer string) value.Value {
	trimmed := strings.TrimSpace(answer)
	switch kind.Class() {
	case manifest.ClassInteger:
		if trimmed == "" {
			return value.Absent()
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return value.Number(f)
		}
		return value.String(trimmed)
	case manifest.ClassQuantity, manifest.ClassEntity:
		if trimmed == "" {
			return value.Absent()
		}
	}
	switch kind {
	case manifest.KindDecimal:
		if trimmed == "" {
			return value.Absent()
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return value.Number(f)
		}
	case manifest.KindAliquot:
		return value.Map(map[string]value.Value{manifest.AliquotContainerKey: value.String(trimmed)})
	}
	return value.String(answer)
}

func childPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}

func label(path []string, td manifest.TypeDescription) string {
	if td.Label != "" {
		return td.Label
	}
	if len(path) == 0 {
		return string(td.Kind)
	}
	return path[len(path)-1]
}

func help(td manifest.TypeDescription) string {
	if td.Description != "" {
		return td.Description
	}
	if td.Kind.Class() == manifest.ClassQuantity {
		return "Enter <number>:<unit>, for example 10:microliter"
	}
	return ""
}

func optionLabels(options []manifest.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		if opt.Label != "" {
			out[i] = opt.Label
		} else {
			out[i] = opt.Value
		}
	}
	return out
}

func optionIndex(options []manifest.Option, name string) int {
	for i, opt := range options {
		if opt.Value == name {
			return i
		}
	}
	return -1
}
