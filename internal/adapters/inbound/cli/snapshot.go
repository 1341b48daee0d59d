package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cryptomod/cryptomod/internal/adapters/outbound/certcache"
	configAdapter "github.com/cryptomod/cryptomod/internal/adapters/outbound/config"
	"github.com/cryptomod/cryptomod/internal/domain"
	"github.com/cryptomod/cryptomod/internal/logging"
)

func newSnapshotCmd() *cobra.Command {
	var (
		snapshotDir string
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show CMVP snapshot status",
		Long:  "Print the loaded certificate snapshot's age and status breakdown. Refreshing the snapshot is an out-of-band job; this only reads what is on disk.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := snapshotDir
			if dir == "" {
				cfg, err := configAdapter.New().Load(".")
				if err != nil {
					return err
				}
				dir = cfg.SnapshotDir
			}

			snapshot, err := certcache.New(logging.New(debug)).Load(dir)
			if err != nil {
				return fmt.Errorf("loading snapshot: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Certificates: %d\n", snapshot.Total())
			if !snapshot.TakenAt.IsZero() {
				fmt.Fprintf(out, "Taken at:     %s\n", snapshot.TakenAt.Format("2006-01-02 15:04:05 MST"))
			} else {
				fmt.Fprintln(out, "Taken at:     unknown (no metadata.json)")
			}

			var statuses []string
			for status := range snapshot.StatusCounts {
				statuses = append(statuses, string(status))
			}
			sort.Strings(statuses)
			for _, status := range statuses {
				count := snapshot.StatusCounts[domain.CertificateStatus(status)]
				fmt.Fprintf(out, "  %-11s %d\n", status+":", count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotDir, "snapshot", "", "CMVP snapshot directory (default from .cryptomod.yaml)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose adapter logging")

	return cmd
}
