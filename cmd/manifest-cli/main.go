package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-manifest/pkg/prompt"
)

// errChecksFailed signals that a report was printed and the command should
// exit non-zero without printing the error again.
var errChecksFailed = errors.New("checks failed")

// app carries flag values and collaborators shared by every subcommand.
type app struct {
	out    io.Writer
	in     io.Reader
	logger *zap.Logger
	cfg    Config
	driver prompt.PromptDriver

	verbose    bool
	configPath string
	schemaRef  string
	valuesRef  string
	output     string
	csvUpload  bool
	withKinds  bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect and check protocol manifest inputs",
		Long: `manifest interprets the "inputs" section of a protocol manifest.

It computes default values, validates submitted values, extracts referenced
container and compound identifiers, prepares values for cloning a run and
reports authoring mistakes in the schema itself.

Schemas and values may be JSON or YAML, read from a file path or an http(s) URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.logger == nil {
				config := zap.NewProductionConfig()
				if a.verbose {
					config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := config.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.logger = logger
			}

			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = a.output
				if err := cfg.validate(); err != nil {
					return err
				}
			}
			a.cfg = cfg
			a.logger.Debug("configuration loaded",
				zap.String("config", a.configPath),
				zap.String("output", cfg.Output),
				zap.Bool("sanitize", cfg.Sanitize),
				zap.Duration("timeout", cfg.Loader.Timeout),
				zap.Bool("allow_http", cfg.Loader.AllowHTTP),
			)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVarP(&a.schemaRef, "schema", "s", "", "manifest or inputs schema (path, URL or - for stdin)")
	flags.StringVarP(&a.output, "output", "o", outputText, "output format: text or json")

	root.AddCommand(
		newDefaultsCmd(a),
		newValidateCmd(a),
		newIDsCmd(a),
		newCloneCmd(a),
		newLintCmd(a),
		newExportCmd(a),
		newFillCmd(a),
	)
	return root
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{out: os.Stdout, in: os.Stdin}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
