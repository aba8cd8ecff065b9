package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultUploadCollection is where institution CSVs have been uploaded.
const defaultUploadCollection = "instituciones_azuay"

var uploadCmd = &cobra.Command{
	Use:   "upload [csv-file]",
	Short: "Insert CSV rows into a collection",
	Long: `Reads a CSV file and inserts one document per row into a collection,
creating the collection when it does not exist. Rows that fail to insert
are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var uploadCollection string

func init() {
	uploadCmd.Flags().StringVarP(&uploadCollection, "collection", "c", defaultUploadCollection, "Target collection")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ingester, err := newIngester()
	if err != nil {
		return err
	}

	res, err := ingester.UploadCSV(cmd.Context(), args[0], uploadCollection)
	if err != nil {
		return withHint(fmt.Errorf("upload failed: %w", err))
	}

	if res.Created {
		cmd.Printf("Created collection %s\n", res.Collection)
	}
	cmd.Printf("Inserted %d of %d rows into %s", res.Inserted, res.Read, res.Collection)
	if res.Failed > 0 {
		cmd.Printf(" (%d failed)", res.Failed)
	}
	cmd.Println()
	return nil
}
