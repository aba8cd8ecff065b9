// Command tramites scrapes the gob.ec procedures catalog.
package main

import (
	"os"

	"github.com/custodia-labs/tramites/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
