package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cryptomod",
		Short:         "Validate FedRAMP cryptographic module inventories",
		Long:          "cryptomod validates declarative cryptographic-module records against the module schema, the cached CMVP certificate registry, and FedRAMP policy rules.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newUUIDCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
