package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Store one raw page of the tramites listing",
	Long: `Fetches one page of the tramites listing and inserts every item, as
returned by the API, into a collection.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

var (
	ingestPage       int
	ingestCollection string
)

func init() {
	ingestCmd.Flags().IntVar(&ingestPage, "page", 0, "Page number to fetch")
	ingestCmd.Flags().StringVarP(&ingestCollection, "collection", "c", "", "Target collection (default tramites_page<N>)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestPage < 0 {
		return fmt.Errorf("page must not be negative, got %d", ingestPage)
	}
	collection := ingestCollection
	if collection == "" {
		collection = fmt.Sprintf("tramites_page%d", ingestPage)
	}

	ingester, err := newIngester()
	if err != nil {
		return err
	}

	res, err := ingester.IngestPage(cmd.Context(), ingestPage, collection)
	if err != nil {
		return withHint(fmt.Errorf("ingest failed: %w", err))
	}

	if res.Created {
		cmd.Printf("Created collection %s\n", res.Collection)
	}
	cmd.Printf("Inserted %d of %d tramites from page %d into %s\n", res.Inserted, res.Read, ingestPage, res.Collection)
	return nil
}
