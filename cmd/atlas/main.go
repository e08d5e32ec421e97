// Command atlas runs the climate atlas service and its supporting tooling:
// serve starts the API, warm prefetches every monthly dataset, and genmock
// writes synthetic data fixtures for local development.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env for local development; the environment wins over the file.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "atlas",
		Short: "Climate atlas dashboard backend",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newWarmCmd())
	rootCmd.AddCommand(newGenmockCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
