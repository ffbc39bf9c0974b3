package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// QuickCmd creates the quick search command.
func QuickCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "quick <term>",
		Short: "Quick search suggestions",
		Long:  "Fetch type-ahead suggestions for a search term.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runQuick(cmd, args[0], limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of suggestions")

	return cmd
}

func runQuick(cmd *cobra.Command, term string, limit int, outputJSON bool) error {
	apiClient, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := "/search/quick?q=" + url.QueryEscape(term)
	if limit > 0 {
		path += fmt.Sprintf("&limit=%d", limit)
	}

	resp, err := apiClient.Get(path)
	if err != nil {
		return err
	}

	if outputJSON {
		fmt.Println(string(resp.Data))
		return nil
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse quick search response: %w", err)
	}

	for _, item := range result.Items {
		fmt.Printf("%s  %s\n", item.Listing.ID, item.Listing.Title)
	}
	return nil
}
