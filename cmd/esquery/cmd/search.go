package cmd

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/esquery/internal/logger"
	"github.com/kailas-cloud/esquery/internal/querydoc"
)

// newSearchCmd creates the search command.
func newSearchCmd(flags *globalFlags) *cobra.Command {
	var format string
	var addrs []string
	var sourceOnly bool

	cmd := &cobra.Command{
		Use:   "search <index> [file]",
		Short: "Run a query document against an index",
		Long: `Compose a query document (JSON or YAML, file or stdin) and execute it against
the configured engine. Use "_all" as the index to search every index.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load()
			if err != nil {
				return err
			}
			if len(addrs) > 0 {
				cfg.Elasticsearch.Addrs = addrs
			}

			logger, err := logpkg.NewLogger("cli", cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			data, err := readDocument(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			doc, err := querydoc.Parse(data, querydoc.Format(format))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = logpkg.ContextWithLogger(ctx, logger)

			a, err := newApp(ctx, cfg, logger, false)
			if err != nil {
				return err
			}
			defer a.Close()

			b := request.NewBuilder()
			if err := querydoc.Apply(doc, b); err != nil {
				return err
			}
			req, err := a.search.Compose(b)
			if err != nil {
				return err
			}

			index := args[0]
			if index == "_all" {
				index = ""
			}
			set, err := a.search.Search(ctx, index, req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if sourceOnly {
				for i := range set.Hits {
					if err := enc.Encode(set.Hits[i].Source()); err != nil {
						return fmt.Errorf("write hit: %w", err)
					}
				}
				return nil
			}
			enc.SetIndent("", "  ")
			return enc.Encode(summarize(set))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or yaml (default: detect)")
	cmd.Flags().StringSliceVar(&addrs, "addr", nil, "Engine address(es), overrides the config")
	cmd.Flags().BoolVar(&sourceOnly, "source", false, "Print each hit's _source as one JSON line")

	return cmd
}

type hitSummary struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source,omitempty"`
}

type setSummary struct {
	Took         int64                      `json:"took"`
	Total        int64                      `json:"total"`
	Hits         []hitSummary               `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
}

func summarize(set result.Set) setSummary {
	out := setSummary{
		Took:         set.Took,
		Total:        set.Total,
		Hits:         make([]hitSummary, len(set.Hits)),
		Aggregations: set.Aggregations,
	}
	for i := range set.Hits {
		h := &set.Hits[i]
		out.Hits[i] = hitSummary{Index: h.Index(), ID: h.ID(), Source: h.Source()}
		if score, ok := h.Score(); ok {
			out.Hits[i].Score = &score
		}
	}
	return out
}
