package client

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

type listingDetail struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Price        float64           `json:"price"`
	Currency     string            `json:"currency"`
	ListingType  string            `json:"listing_type"`
	Status       string            `json:"status"`
	Wilaya       string            `json:"wilaya"`
	Commune      string            `json:"commune"`
	Attributes   map[string]string `json:"attributes"`
	Photos       []string          `json:"photos"`
	TypeLabel    string            `json:"type_label"`
	PriceLabel   string            `json:"price_label"`
	PurchaseType string            `json:"purchase_type"`
	CreatedAt    string            `json:"created_at"`
}

// GetCmd creates the get command.
func GetCmd() *cobra.Command {
	var downloadDir string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a listing",
		Long:  "Fetch one listing by ID, with resolved photo URLs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runGet(cmd, args[0], downloadDir, outputJSON)
		},
	}

	cmd.Flags().StringVar(&downloadDir, "download-photos", "", "Download photos into the given directory")

	return cmd
}

func runGet(cmd *cobra.Command, id, downloadDir string, outputJSON bool) error {
	apiClient, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := apiClient.Get("/listings/" + id)
	if err != nil {
		return err
	}

	if outputJSON {
		fmt.Println(string(resp.Data))
		return nil
	}

	var listing listingDetail
	if err := json.Unmarshal(resp.Data, &listing); err != nil {
		return fmt.Errorf("failed to parse listing: %w", err)
	}

	fmt.Printf("%s  [%s]\n", listing.Title, listing.TypeLabel)
	fmt.Printf("%s: %.0f %s\n", listing.PriceLabel, listing.Price, listing.Currency)
	if listing.Commune != "" {
		fmt.Printf("Location: %s, %s\n", listing.Commune, listing.Wilaya)
	} else {
		fmt.Printf("Location: %s\n", listing.Wilaya)
	}
	fmt.Printf("Status: %s\n", listing.Status)
	if listing.Description != "" {
		fmt.Printf("\n%s\n", listing.Description)
	}
	for key, value := range listing.Attributes {
		fmt.Printf("  %s: %s\n", key, value)
	}

	if downloadDir != "" {
		for i, photoURL := range listing.Photos {
			outputPath := filepath.Join(downloadDir, fmt.Sprintf("%s-%d.jpg", listing.ID, i+1))
			if err := apiClient.DownloadFile(photoURL, outputPath); err != nil {
				return fmt.Errorf("failed to download photo %d: %w", i+1, err)
			}
			fmt.Printf("downloaded %s\n", outputPath)
		}
	}

	return nil
}
