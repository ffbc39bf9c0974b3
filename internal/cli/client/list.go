package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

type listingsPage struct {
	Items   []listingDetail `json:"items"`
	Cursor  string          `json:"cursor,omitempty"`
	HasMore bool            `json:"has_more"`
}

// ListCmd creates the list command.
func ListCmd() *cobra.Command {
	var limit int
	var cursor string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse recent listings",
		Long:  "List active listings ordered by creation time, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runList(cmd, cursor, limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from a previous page")

	return cmd
}

func runList(cmd *cobra.Command, cursor string, limit int, outputJSON bool) error {
	apiClient, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := "/listings"
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := apiClient.Get(path)
	if err != nil {
		return err
	}

	if outputJSON {
		fmt.Println(string(resp.Data))
		return nil
	}

	var page listingsPage
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		return fmt.Errorf("failed to parse listings: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	for _, l := range page.Items {
		location := l.Wilaya
		if l.Commune != "" {
			location = l.Commune + ", " + l.Wilaya
		}
		fmt.Printf("%s  [%s]  %s — %.0f %s (%s)\n", l.ID, l.TypeLabel, l.Title, l.Price, l.Currency, location)
	}

	if page.HasMore {
		fmt.Printf("\nmore results: --cursor %s\n", page.Cursor)
	}
	return nil
}
