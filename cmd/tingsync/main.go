// Command tingsync synchronises parliamentary open data into a local store.
package main

import (
	"os"

	"github.com/custodia-labs/tingsync/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
