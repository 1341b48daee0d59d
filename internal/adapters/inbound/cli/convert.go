package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cryptomod/cryptomod/internal/application"
	"github.com/cryptomod/cryptomod/internal/logging"
)

func newConvertCmd() *cobra.Command {
	var (
		output string
		format string
		merge  bool
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file-or-dir>",
		Short: "Convert module records between YAML and JSON",
		Long:  "Convert a single record file (direction chosen by extension), batch-convert a directory, or merge all records into one CryptographicModuleList JSON document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewConvertService(logging.New(debug))
			input := args[0]

			if merge {
				out := output
				if out == "" {
					out = "all-modules.json"
				}
				count, err := svc.Merge(input, out)
				if err != nil {
					return fmt.Errorf("merge failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Merged %d modules into %s\n", count, out)
				return nil
			}

			if isDir(input) {
				if format == "" {
					return fmt.Errorf("--format is required for directory conversion")
				}
				converted, err := svc.ConvertDir(input, outputOr(output, input+"/_generated"), format)
				if err != nil {
					return fmt.Errorf("convert failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Converted %d files\n", len(converted))
				return nil
			}

			out, err := svc.ConvertFile(input, output)
			if err != nil {
				return fmt.Errorf("convert failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted: %s -> %s\n", input, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Target format for directory conversion: yaml or json")
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge all records into a single JSON list")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose adapter logging")

	return cmd
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func outputOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
