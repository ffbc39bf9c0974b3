package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type searchRequest struct {
	SearchTerm       string   `json:"search_term,omitempty"`
	CategoryID       string   `json:"category_id,omitempty"`
	SubcategoryID    string   `json:"subcategory_id,omitempty"`
	Wilaya           string   `json:"wilaya,omitempty"`
	Commune          string   `json:"commune,omitempty"`
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         *float64 `json:"max_price,omitempty"`
	ListingType      string   `json:"listing_type,omitempty"`
	BrandID          string   `json:"brand_id,omitempty"`
	ModelID          string   `json:"model_id,omitempty"`
	ReferenceCommune string   `json:"reference_commune,omitempty"`
}

type searchResultItem struct {
	Listing struct {
		ID         string  `json:"id"`
		Title      string  `json:"title"`
		Price      float64 `json:"price"`
		Currency   string  `json:"currency"`
		PriceLabel string  `json:"price_label"`
		TypeLabel  string  `json:"type_label"`
		Wilaya     string  `json:"wilaya"`
		Commune    string  `json:"commune"`
	} `json:"listing"`
	Relevance     *float64 `json:"relevance,omitempty"`
	DistanceLabel string   `json:"distance_label,omitempty"`
}

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Count int                `json:"count"`
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var req searchRequest
	var minPrice, maxPrice float64

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search listings",
		Long:  "Search active listings by term and filters. Without a term, listings are filtered and ordered by recency.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				req.SearchTerm = args[0]
			}
			if cmd.Flags().Changed("min-price") {
				req.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				req.MaxPrice = &maxPrice
			}

			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSearch(cmd, req, outputJSON)
		},
	}

	cmd.Flags().StringVar(&req.CategoryID, "category", "", "Category ID filter")
	cmd.Flags().StringVar(&req.SubcategoryID, "subcategory", "", "Subcategory ID filter")
	cmd.Flags().StringVar(&req.Wilaya, "wilaya", "", "Wilaya filter")
	cmd.Flags().StringVar(&req.Commune, "commune", "", "Commune filter")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().StringVar(&req.ListingType, "type", "", "Listing type (offre, je_cherche, rent, service, job)")
	cmd.Flags().StringVar(&req.BrandID, "brand", "", "Brand ID filter")
	cmd.Flags().StringVar(&req.ModelID, "model", "", "Model ID filter")
	cmd.Flags().StringVar(&req.ReferenceCommune, "near", "", "Reference commune for distances")

	return cmd
}

func runSearch(cmd *cobra.Command, req searchRequest, outputJSON bool) error {
	apiClient, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := apiClient.Post("/search", req)
	if err != nil {
		return err
	}

	if outputJSON {
		fmt.Println(string(resp.Data))
		return nil
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse search response: %w", err)
	}

	if result.Count == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	for _, item := range result.Items {
		printResultLine(item)
	}
	fmt.Printf("\n%d listing(s)\n", result.Count)
	return nil
}

func printResultLine(item searchResultItem) {
	l := item.Listing
	location := l.Wilaya
	if l.Commune != "" {
		location = l.Commune + ", " + l.Wilaya
	}

	line := fmt.Sprintf("%s  [%s]  %s — %s: %.0f %s (%s)", l.ID, l.TypeLabel, l.Title, l.PriceLabel, l.Price, l.Currency, location)
	if item.DistanceLabel != "" {
		line += "  " + item.DistanceLabel
	}
	fmt.Println(line)
}
