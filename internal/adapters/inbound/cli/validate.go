package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cryptomod/cryptomod/internal/adapters/outbound/certcache"
	configAdapter "github.com/cryptomod/cryptomod/internal/adapters/outbound/config"
	"github.com/cryptomod/cryptomod/internal/adapters/outbound/gitinfo"
	"github.com/cryptomod/cryptomod/internal/adapters/outbound/modstore"
	"github.com/cryptomod/cryptomod/internal/adapters/outbound/render"
	"github.com/cryptomod/cryptomod/internal/application"
	"github.com/cryptomod/cryptomod/internal/logging"
)

func newValidateCmd() *cobra.Command {
	var (
		modulesDir  string
		snapshotDir string
		format      string
		output      string
		minLevel    int
		strict      bool
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate module records against schema, CMVP status, and policy",
		Long:  "Run every module record through the schema checker, the cached CMVP certificate lookup, and the FedRAMP policy rules. The exit code encodes the worst failure category: 1 schema, 2 certificate, 3 policy; warnings alone exit 0.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newValidateService(debug)

			report, _, err := svc.Run(application.ValidateOptions{
				RepoDir:          ".",
				ModulesDir:       modulesDir,
				SnapshotDir:      snapshotDir,
				MinSecurityLevel: minLevel,
				Strict:           strict,
			})
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			case "github":
				fmt.Fprint(cmd.OutOrStdout(), render.GitHubActions(report))
			case "text":
				fmt.Fprint(cmd.OutOrStdout(), render.Text(report))
			default:
				return fmt.Errorf("unknown format %q (want text, json, or github)", format)
			}

			if output != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("writing results: %w", err)
				}
			}

			if report.ExitCode != 0 {
				return exitWithCode(report.ExitCode,
					"validation failed: %d invalid module(s)", report.InvalidModules)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modulesDir, "modules", "", "Modules directory (default from .cryptomod.yaml)")
	cmd.Flags().StringVar(&snapshotDir, "snapshot", "", "CMVP snapshot directory (default from .cryptomod.yaml)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, or github")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also write full results JSON to this file")
	cmd.Flags().IntVar(&minLevel, "min-level", 0, "Minimum required security level (0 disables the check)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose adapter logging")

	return cmd
}

func newValidateService(debug bool) *application.ValidateService {
	log := logging.New(debug)
	return application.NewValidateService(
		modstore.New(log),
		certcache.New(log),
		configAdapter.New(),
		gitinfo.New(),
	)
}
