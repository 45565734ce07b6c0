package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "n2c",
	Short:        "New2Canada — personalized resource guidance for newcomers to Canada",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, categoriesCmd, versionCmd)
}

func main() {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
