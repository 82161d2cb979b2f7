package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/profile"
)

func initCmd(a *app) *cobra.Command {
	var (
		outPath string
		verbose bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a blank system profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := profile.WriteTemplate(outPath, force); err != nil {
				return failf("ERROR: %v", err)
			}
			a.logger.Debug("Template written", "path", outPath)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated profile template: %s\n", outPath)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "1. Edit the template to reflect your system's actual configuration")
			fmt.Fprintln(out, "2. Set boolean fields to true where controls are implemented")
			fmt.Fprintln(out, "3. Fill in lists and details for each control area")
			fmt.Fprintf(out, "4. Run: govctl evaluate -p %s\n", outPath)

			if verbose {
				fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 60))
				fmt.Fprintln(out, profile.FieldGuide())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "system_profile_template.json", "Where to write the template")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print the field guide")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
