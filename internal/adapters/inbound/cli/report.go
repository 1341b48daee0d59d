package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptomod/cryptomod/internal/adapters/outbound/render"
	"github.com/cryptomod/cryptomod/internal/application"
)

func newReportCmd() *cobra.Command {
	var (
		modulesDir  string
		snapshotDir string
		output      string
		jsonOutput  string
		csvOut      bool
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the markdown compliance report",
		Long:  "Validate the inventory and write a markdown compliance report with a JSON summary, grouped into compliant, action-required (POA&M), and non-compliant modules.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			validateSvc := newValidateService(debug)
			opts := application.ValidateOptions{
				RepoDir:     ".",
				ModulesDir:  modulesDir,
				SnapshotDir: snapshotDir,
			}

			if csvOut {
				report, files, err := validateSvc.Run(opts)
				if err != nil {
					return fmt.Errorf("report failed: %w", err)
				}
				out, err := render.CSV(report, application.RecordsByName(files))
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			reportSvc := application.NewReportService(validateSvc)
			if err := reportSvc.Generate(opts, output, jsonOutput); err != nil {
				return fmt.Errorf("report failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report generated: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&modulesDir, "modules", "", "Modules directory (default from .cryptomod.yaml)")
	cmd.Flags().StringVar(&snapshotDir, "snapshot", "", "CMVP snapshot directory (default from .cryptomod.yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "reports/latest/validation-summary.md", "Markdown report path")
	cmd.Flags().StringVar(&jsonOutput, "json-output", "", "JSON summary path (default: next to the markdown)")
	cmd.Flags().BoolVar(&csvOut, "csv", false, "Print a CSV inventory to stdout instead of writing files")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose adapter logging")

	return cmd
}
