package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List stored collections",
	Args:  cobra.NoArgs,
	RunE:  runCollections,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, _ []string) error {
	reporter, err := newReporter()
	if err != nil {
		return err
	}

	names, err := reporter.Collections(cmd.Context())
	if err != nil {
		return withHint(fmt.Errorf("failed to list collections: %w", err))
	}

	if len(names) == 0 {
		cmd.Println("No collections found.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}
