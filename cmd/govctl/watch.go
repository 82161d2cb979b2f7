package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/watch"
)

func watchCmd(a *app) *cobra.Command {
	f := &evaluateFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate whenever the profile or catalog changes",
		Long: `Watch runs evaluate once, then again every time the profile or the
controls file is written, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(f.format, "table", "markdown", "json", "csv", "html"); err != nil {
				return err
			}
			profilePath := a.profilePath(f.profile)
			catalogPath := a.catalogPath(f.controls)

			if _, err := a.evaluateOnce(cmd, f); err != nil {
				return err
			}

			w, err := watch.New(watch.Config{
				Paths:    []string{profilePath, catalogPath},
				Debounce: a.cfg.Watch.Debounce,
				Logger:   a.logger.With("component", "watch"),
			})
			if err != nil {
				return failf("ERROR: watch: %v", err)
			}
			if !f.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s and %s (Ctrl+C to stop)\n", profilePath, catalogPath)
			}

			return w.Run(cmd.Context(), func(changed []string) {
				a.logger.Info("Re-evaluating", "changed", changed)
				if _, err := a.evaluateOnce(cmd, f); err != nil {
					a.logger.Error("Evaluation failed", "error", err)
				}
			})
		},
	}

	f.register(cmd)
	return cmd
}
