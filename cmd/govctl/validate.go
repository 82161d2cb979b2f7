package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/catalog"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/output"
)

func validateCmd(a *app) *cobra.Command {
	var (
		catalogFlag string
		format      string
		strict      bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the controls catalog",
		Long: `Validate checks every control for required fields, known severities,
unique well-formed IDs and non-empty mappings. Exits 1 when the catalog is
invalid; --strict also fails on warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}
			path := a.catalogPath(catalogFlag)
			res, err := catalog.ValidateFile(path, strict || a.cfg.Evaluate.StrictValidation)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return failf("ERROR: Controls file not found at %s", path)
				}
				return failf("ERROR: %v", err)
			}
			a.logger.Debug("Catalog validated", "path", path, "valid", res.Valid, "errors", len(res.Errors), "warnings", len(res.Warnings))

			render := func(w io.Writer) error {
				return output.WriteValidationTable(w, res, path, quiet, styles(cmd, ""))
			}
			if format == "json" {
				doc := struct {
					model.ValidationResult
					File string `json:"file"`
				}{res, path}
				doc.ValidatedAt = model.Timestamp(a.now())
				render = func(w io.Writer) error { return output.WriteJSON(w, doc) }
			}
			if err := render(cmd.OutOrStdout()); err != nil {
				return err
			}

			if !res.Valid {
				return exitCode(exitFindings)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&catalogFlag, "controls", "c", "", "Path to controls YAML (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	return cmd
}
