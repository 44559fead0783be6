package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-manifest/internal/loader"
	"github.com/goliatone/go-manifest/pkg/manifest"
	"github.com/goliatone/go-manifest/pkg/openapi"
	"github.com/goliatone/go-manifest/pkg/prompt"
	"github.com/goliatone/go-manifest/pkg/report"
	"github.com/goliatone/go-manifest/pkg/value"
)

func addValuesFlag(cmd *cobra.Command, a *app, usage string) {
	cmd.Flags().StringVar(&a.valuesRef, "values", "", usage)
}

func newDefaultsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default value tree for a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadManifest(cmd.Context())
			if err != nil {
				return err
			}
			var opts []manifest.DefaultsOption
			if a.csvUpload {
				opts = append(opts, manifest.WithCSVUpload())
			}
			return a.writeJSON(manifest.Defaults(m.Inputs, opts...))
		},
	}
	cmd.Flags().BoolVar(&a.csvUpload, "csv-upload", false, "omit leaf defaults, keeping only group structure")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate values against a schema",
		Long: `Validate values against a schema and print every failing input.

Exits non-zero when any input fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, values, err := a.loadBoth(cmd.Context())
			if err != nil {
				return err
			}
			tree := manifest.Errors(m.Inputs, values)
			a.logger.Debug("values validated",
				zap.String("schema", a.schemaRef),
				zap.Int("errors", len(tree.Messages())),
			)

			if a.cfg.Output == outputJSON {
				if err := a.writeJSON(tree); err != nil {
					return err
				}
			} else {
				renderer, err := report.New()
				if err != nil {
					return err
				}
				if err := renderer.Errors(a.out, a.valuesLabel(), tree); err != nil {
					return err
				}
			}
			if tree.HasErrors() {
				return errChecksFailed
			}
			return nil
		},
	}
	addValuesFlag(cmd, a, "values to validate (path, URL or - for stdin)")
	return cmd
}

func newIDsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "List container and compound identifiers referenced by values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, values, err := a.loadBoth(cmd.Context())
			if err != nil {
				return err
			}
			refs := manifest.EntityRefs(m.Inputs, values)

			if a.cfg.Output == outputJSON {
				if a.withKinds {
					return a.writeJSON(refs)
				}
				return a.writeJSON(manifest.EntityIDs(m.Inputs, values))
			}
			renderer, err := report.New()
			if err != nil {
				return err
			}
			return renderer.IDs(a.out, a.valuesLabel(), refs)
		},
	}
	addValuesFlag(cmd, a, "values to scan (path, URL or - for stdin)")
	cmd.Flags().BoolVar(&a.withKinds, "kinds", false, "include the entity kind in JSON output")
	return cmd
}

func newCloneCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Prepare captured values for resubmission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, values, err := a.loadBoth(cmd.Context())
			if err != nil {
				return err
			}
			return a.writeJSON(manifest.FilterForClone(m.Inputs, values))
		},
	}
	addValuesFlag(cmd, a, "captured values (path, URL or - for stdin)")
	return cmd
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report authoring mistakes in a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadManifest(cmd.Context())
			if err != nil {
				return err
			}
			issues := manifest.Lint(m.Inputs)

			if a.cfg.Output == outputJSON {
				if issues == nil {
					issues = []manifest.Issue{}
				}
				if err := a.writeJSON(issues); err != nil {
					return err
				}
			} else {
				renderer, err := report.New()
				if err != nil {
					return err
				}
				if err := renderer.Lint(a.out, a.schemaRef, issues); err != nil {
					return err
				}
			}
			if len(issues) > 0 {
				return errChecksFailed
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the schema as an OpenAPI object schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadManifest(cmd.Context())
			if err != nil {
				return err
			}
			return a.writeJSON(openapi.ExportManifest(m))
		},
	}
}

func newFillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Prompt for every input and print the collected values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadManifest(cmd.Context())
			if err != nil {
				return err
			}
			prefill := value.Absent()
			if a.valuesRef != "" {
				if prefill, err = a.loadValues(cmd.Context()); err != nil {
					return err
				}
			}

			var opts []prompt.Option
			if a.driver != nil {
				opts = append(opts, prompt.WithPromptDriver(a.driver))
			}
			values, err := prompt.New(opts...).Fill(cmd.Context(), m.Inputs, prefill)
			if err != nil {
				return err
			}
			return a.writeJSON(values)
		},
	}
	addValuesFlag(cmd, a, "values used to prefill the prompts (path or URL)")
	return cmd
}

func (a *app) documentLoader() *loader.Loader {
	return loader.New(manifest.NewLoaderOptions(
		manifest.WithHTTPFallback(a.cfg.Loader.AllowHTTP),
		manifest.WithRequestTimeout(a.cfg.Loader.Timeout),
		manifest.WithStdin(a.in),
	))
}

func (a *app) loadManifest(ctx context.Context) (manifest.Manifest, error) {
	if strings.TrimSpace(a.schemaRef) == "" {
		return manifest.Manifest{}, errors.New("--schema is required")
	}

	var opts []manifest.DecodeOption
	if a.cfg.Sanitize {
		opts = append(opts, manifest.WithSanitizer(manifest.HelpTextSanitizer()))
	}
	m, err := a.documentLoader().LoadManifestRef(ctx, a.schemaRef, opts...)
	if err != nil {
		return manifest.Manifest{}, err
	}
	a.logger.Debug("manifest loaded",
		zap.String("source", a.schemaRef),
		zap.String("id", m.ID),
		zap.Int("inputs", m.Inputs.Len()),
	)
	return m, nil
}

// loadValues reads --values. Without the flag the values are an empty map.
func (a *app) loadValues(ctx context.Context) (value.Value, error) {
	if strings.TrimSpace(a.valuesRef) == "" {
		return value.EmptyMap(), nil
	}
	return a.documentLoader().LoadValuesRef(ctx, a.valuesRef)
}

func (a *app) loadBoth(ctx context.Context) (manifest.Manifest, value.Value, error) {
	m, err := a.loadManifest(ctx)
	if err != nil {
		return manifest.Manifest{}, value.Value{}, err
	}
	values, err := a.loadValues(ctx)
	if err != nil {
		return manifest.Manifest{}, value.Value{}, err
	}
	return m, values, nil
}

func (a *app) valuesLabel() string {
	switch a.valuesRef {
	case "":
		return "empty values"
	case manifest.StdinRef:
		return "stdin"
	default:
		return a.valuesRef
	}
}

func (a *app) writeJSON(payload any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
