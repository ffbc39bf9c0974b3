package main

import (
	"fmt"
	"os"

	"github.com/elsouk/elsouk/internal/cli"
	"github.com/elsouk/elsouk/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "elsouk",
		Short: "Elsouk CLI - search Algerian classifieds",
		Long: `Elsouk CLI provides commands to search and browse listings.

Environment variables:
  ELSOUK_API_URL   API base URL (default: http://localhost:8080)
  ELSOUK_USER_ID   User ID sent with requests (enables search history)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	rootCmd.PersistentFlags().String("user-id", "", "User ID sent with requests (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.InitCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.QuickCmd())
	rootCmd.AddCommand(client.GetCmd())
	rootCmd.AddCommand(client.ListCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
