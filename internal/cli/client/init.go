package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitCmd creates the init command.
func InitCmd() *cobra.Command {
	var apiURL, userID string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Save client configuration",
		Long:  "Save the API URL and optional user ID to the global config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(apiURL, userID)
		},
	}

	cmd.Flags().StringVar(&apiURL, "url", defaultAPIURL, "API base URL")
	cmd.Flags().StringVar(&userID, "user", "", "User ID sent with requests (enables search history)")

	return cmd
}

func runInit(apiURL, userID string) error {
	if err := SaveGlobalConfig(&GlobalConfig{APIURL: apiURL, UserID: userID}); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	fmt.Printf("configuration saved to %s\n", configPath)
	return nil
}
