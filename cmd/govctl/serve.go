package main

import (
	"github.com/spf13/cobra"

	"ai-governance-controls/internal/metrics"
	"ai-governance-controls/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr     string
		controls string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve evaluation, classification and validation over HTTP",
		Long: `Serve loads the catalog once and answers POST /v1/evaluate, /v1/classify,
/v1/validate and /v1/report until interrupted. Prometheus metrics are on
GET /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctls, err := a.loadControls(a.catalogPath(controls))
			if err != nil {
				return err
			}
			e, err := a.evaluator()
			if err != nil {
				return err
			}
			c, err := a.classifier()
			if err != nil {
				return err
			}

			cfg := a.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			srv := server.New(ctls, e, c, metrics.NewRecorder(),
				server.WithLogger(a.logger.With("component", "server")),
				server.WithVersion(Version),
				server.WithMaxBodyBytes(cfg.MaxBodyBytes),
			)
			if err := srv.Run(cmd.Context(), cfg); err != nil {
				return failf("ERROR: server: %v", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().StringVarP(&controls, "controls", "c", "", "Path to controls YAML (default from config)")
	return cmd
}
