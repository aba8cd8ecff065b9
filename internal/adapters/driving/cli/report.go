package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driving"
)

var reportCmd = &cobra.Command{
	Use:   "report [collection...]",
	Short: "Summarise stored collections",
	Long: `Prints document, column and null counts, field population, name
initials, the most frequent words of a text field, categories, the longest
names and, with --search, the documents whose name contains a query.

Several collections may be given, or --all for every collection in the
store. --search may be repeated; each collection is loaded once and every
query runs against the loaded documents.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if reportAll && len(args) > 0 {
			return errors.New("--all cannot be combined with collection names")
		}
		if !reportAll && len(args) == 0 {
			return errors.New("requires a collection name or --all")
		}
		return nil
	},
	RunE: runReport,
}

var (
	reportField   string
	reportTop     int
	reportSearch  []string
	reportRefresh bool
	reportAll     bool
)

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportField, "field", "f", domain.ColName, "Text field for word frequencies")
	f.IntVarP(&reportTop, "top", "n", 20, "Number of frequent words to show")
	f.StringArrayVarP(&reportSearch, "search", "s", nil, "Show documents whose name contains this text (repeatable)")
	f.BoolVar(&reportRefresh, "refresh", false, "Reload collections instead of using the cache")
	f.BoolVar(&reportAll, "all", false, "Report every collection in the store")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	reporter, err := newReporter()
	if err != nil {
		return err
	}

	collections := args
	if reportAll {
		collections, err = reporter.Collections(cmd.Context())
		if err != nil {
			return withHint(fmt.Errorf("failed to list collections: %w", err))
		}
		if len(collections) == 0 {
			cmd.Println("No collections.")
			return nil
		}
	}

	renderer := newReportRenderer(cmd.OutOrStdout())
	for _, collection := range collections {
		if err := reportCollection(cmd, reporter, renderer, collection); err != nil {
			return err
		}
	}
	return nil
}

// reportCollection renders the full report of collection with the first
// query, then only the search section for each further query. Only the
// first load honours --refresh.
func reportCollection(
	cmd *cobra.Command, reporter driving.Reporter, renderer *reportRenderer, collection string,
) error {
	queries := reportSearch
	if len(queries) == 0 {
		queries = []string{""}
	}

	for i, query := range queries {
		r, err := buildReport(cmd.Context(), reporter, collection, query, reportRefresh && i == 0)
		switch {
		case errors.Is(err, domain.ErrEmptyCollection):
			cmd.Printf("Collection %s has no documents.\n", collection)
			return nil
		case err != nil:
			return withHint(fmt.Errorf("failed to build report: %w", err))
		}

		if i == 0 {
			renderer.render(r)
		} else {
			renderer.search(r)
		}
	}
	return nil
}

func buildReport(
	ctx context.Context, reporter driving.Reporter, collection, query string, refresh bool,
) (*driving.Report, error) {
	return reporter.Report(ctx, collection, driving.ReportOptions{
		TextField: reportField,
		TopWords:  reportTop,
		Query:     query,
		Refresh:   refresh,
	})
}
