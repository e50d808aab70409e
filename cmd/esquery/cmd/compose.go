package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/esquery/internal/querydoc"
)

// newComposeCmd creates the compose command.
func newComposeCmd() *cobra.Command {
	var format string
	var compact bool

	cmd := &cobra.Command{
		Use:   "compose [file]",
		Short: "Print the engine body composed from a query document",
		Long: `Read a query document (JSON or YAML) from a file or stdin and print the
search body that would be sent to the engine. Nothing is executed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readDocument(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			req, err := querydoc.Build(data, querydoc.Format(format))
			if err != nil {
				return fmt.Errorf("compose: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(req.Source())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or yaml (default: detect)")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print the body on a single line")

	return cmd
}
