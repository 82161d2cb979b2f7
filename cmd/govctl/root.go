package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/catalog"
	"ai-governance-controls/internal/config"
	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/output"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/remediation"
	"ai-governance-controls/internal/risk"
)

// defaultProfile is used when neither -p nor the config names one.
var defaultProfile = filepath.Join("examples", "system_profile.json")

// app is the state shared by every subcommand once the root has run.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

func rootCmd() *cobra.Command {
	a := &app{now: time.Now}

	cmd := &cobra.Command{
		Use:   "govctl",
		Short: "AI governance controls evaluator",
		Long: `govctl checks an AI system profile against a catalog of governance
controls mapped to the NIST AI RMF and the EU AI Act, classifies the system
into an EU AI Act risk tier and reports remediation for every gap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: ./aigov.yaml when present)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		validateCmd(a),
		evaluateCmd(a),
		classifyCmd(a),
		initCmd(a),
		reportCmd(a),
		diffCmd(a),
		serveCmd(a),
		watchCmd(a),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "govctl %s\n", Version)
		},
	}
}

// setup installs logging and loads the layered configuration.
func (a *app) setup(cmd *cobra.Command) error {
	stderr := cmd.ErrOrStderr()
	a.installLogger(stderr, a.logLevel)

	cfg, err := config.NewLoader(a.logger).Load(a.configPath)
	if err != nil {
		return failf("ERROR: %v", err)
	}
	a.cfg = cfg
	if a.logLevel == "" {
		a.installLogger(stderr, cfg.Log.Level)
	}
	return nil
}

func (a *app) installLogger(w io.Writer, name string) {
	level := slog.LevelWarn
	switch name {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
}

func (a *app) catalogPath(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Catalog
}

func (a *app) profilePath(flag string) string {
	switch {
	case flag != "":
		return flag
	case a.cfg.Profile != "":
		return a.cfg.Profile
	default:
		return defaultProfile
	}
}

func (a *app) metricsPath(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Metrics.Textfile
}

// loadControls reads the catalog, reporting a missing file the way every
// command does.
func (a *app) loadControls(path string) ([]model.Control, error) {
	c, err := catalog.Load(path)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, failf("ERROR: Controls file not found at %s", path)
		}
		return nil, failf("ERROR: %v", err)
	}
	return c.Controls, nil
}

func (a *app) loadProfile(path string) (profile.Value, error) {
	root, err := profile.Load(path)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Value{}, failf("ERROR: Profile not found at %s", path)
		}
		return profile.Value{}, failf("ERROR: %v", err)
	}
	return root, nil
}

// evaluator builds an Evaluator over the configured remediation table.
func (a *app) evaluator() (*evaluate.Evaluator, error) {
	guidance := remediation.Default()
	if p := a.cfg.Tables.Remediation; p != "" {
		t, err := remediation.Load(p)
		if err != nil {
			return nil, failf("ERROR: %v", err)
		}
		a.logger.Debug("Loaded remediation table", "path", p, "controls", t.Len())
		guidance = t
	}
	return evaluate.New(guidance, nil), nil
}

func (a *app) classifier() (*risk.Classifier, error) {
	p := a.cfg.Tables.Risk
	if p == "" {
		return risk.NewClassifier(nil), nil
	}
	t, err := risk.LoadTables(p)
	if err != nil {
		return nil, failf("ERROR: %v", err)
	}
	a.logger.Debug("Loaded risk tables", "path", p)
	return risk.NewClassifier(t), nil
}

// emit renders to path when set, otherwise to the command's stdout.
func emit(cmd *cobra.Command, path string, quiet bool, render func(io.Writer) error) error {
	if path == "" {
		return render(cmd.OutOrStdout())
	}
	if err := output.ToFile(path, render); err != nil {
		return failf("ERROR: %v", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to: %s\n", path)
	}
	return nil
}

// styles colours output only when it goes to a terminal.
func styles(cmd *cobra.Command, path string) output.Styles {
	if path != "" {
		return output.Plain()
	}
	return output.StylesFor(cmd.OutOrStdout())
}

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if f == format {
			return nil
		}
	}
	return failf("ERROR: unsupported format %q (want one of %v)", format, allowed)
}
