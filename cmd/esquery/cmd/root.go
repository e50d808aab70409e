// Package cmd provides the CLI commands for esquery.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/esquery/internal/config"
	"github.com/kailas-cloud/esquery/internal/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	env        string
}

// NewRootCmd creates the root command for the esquery CLI.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "esquery",
		Short: "Compose and run Elasticsearch search requests",
		Long: `esquery merges independently written query and filter fragments into one
search request. Cheap cacheable filters are grouped into a single bool filter;
script, numeric_range and geo filters are chained with "and".

Requests are described as JSON or YAML documents:

  queries: [{match: {title: rock}}]
  filters: [{term: {city: paris}}, {geo_distance: {distance: 10km, loc: [2.35, 48.85]}}]
  size: 20`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("esquery version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.env, "env", "", "Config environment (default: $ENV or local)")

	cmd.AddCommand(newComposeCmd())
	cmd.AddCommand(newSearchCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// load resolves the configuration from --config, --env or $ENV.
func (f *globalFlags) load() (config.Config, string, error) {
	env := f.env
	if env == "" {
		env = config.GetEnv()
	}
	if f.configPath != "" {
		cfg, err := config.LoadFile(f.configPath)
		return cfg, env, err
	}
	cfg, err := config.Load(env)
	return cfg, env, err
}

// readDocument reads a query document from a file, or stdin for "" and "-".
func readDocument(in io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
