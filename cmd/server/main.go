// Command deck-api serves deck preset operations over gRPC and inspects
// presets locally.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-api/cmd/server/client"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "deck-api",
	Short:   "Deck preset resolution and sharing service",
	Long:    `deck-api resolves deck configurations against reference data and encodes, decodes, reconciles and shares deck presets.`,
	Version: version,

	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serverCmd, inspectCmd, client.ClientCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
