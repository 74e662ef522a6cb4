// Package main provides the docforge command line interface.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/docforge/internal/assets"
	"github.com/jonathan/docforge/internal/config"
	"github.com/jonathan/docforge/internal/errs"
	"github.com/jonathan/docforge/internal/observability"
	"github.com/jonathan/docforge/internal/pipeline"
)

// app carries the settings shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	themeID    string
	agencyFile string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "docforge",
		Short: "Proposal, contract and invoice PDF generator",
		Long: `docforge turns JSON payloads into branded PDF documents.

A payload is classified as an invoice, a contract or a proposal intake form,
validated, composed from the content catalog and rendered to PDF.

Configuration can be loaded from a JSON file using --config. DOCFORGE_*
environment variables override the file, and flags override both.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: console or json")
	flags.StringVar(&a.themeID, "theme", "", "Default theme for payloads that name none")
	flags.StringVar(&a.agencyFile, "agency", "", "Path to a JSON agency profile replacing the built-in one")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print request, block and document summaries")

	root.AddCommand(
		newGenerateCmd(a),
		newValidateCmd(a),
		newCatalogCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup resolves configuration (defaults, file, environment, flags) and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg = cfg.ApplyEnv()

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("theme") {
		cfg.ThemeID = a.themeID
	}
	if flags.Changed("agency") {
		cfg.AgencyFile = a.agencyFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// engine builds a generation engine from the resolved configuration.
func (a *app) engine() (*pipeline.Engine, error) {
	opts := pipeline.Options{
		Loader: assets.NewLoader(assets.LoaderOptions{
			FetchTimeout:  a.cfg.FetchTimeoutDuration(),
			MaxConcurrent: a.cfg.MaxConcurrent,
			MaxBytes:      a.cfg.MaxImageBytes,
			Logger:        a.logger,
		}),
		Logger:         a.logger,
		DefaultThemeID: a.cfg.ThemeID,
	}
	if a.cfg.AgencyFile != "" {
		agency, err := config.LoadAgency(a.cfg.AgencyFile)
		if err != nil {
			return nil, err
		}
		opts.Agency = agency
	}
	if a.cfg.Verbose {
		opts.OnProgress = func(ev pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(a.stderr, "[%s] %s -> %s\n", ev.RequestID[:8], ev.From, ev.To)
		}
	}
	return pipeline.New(opts)
}

func (a *app) printer() *observability.Printer {
	return observability.NewPrinter(a.stdout)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(max(errs.ExitCode(err), 1))
	}
}
