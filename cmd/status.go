package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scaudit/scaudit-cli/internal/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backend model status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	resp, err := client.Status(cmd.Context())
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("status check failed: %s", apiErr.Message())
		}
		return fmt.Errorf("status check failed: %w", err)
	}

	fmt.Printf("Server:  %s\n", client.BaseURL())
	if resp.Loaded {
		fmt.Printf("Model:   loaded (%s)\n", resp.Device)
	} else {
		fmt.Println("Model:   not loaded")
	}
	fmt.Printf("Base:    %s\n", resp.BaseModelPath)
	fmt.Printf("Adapter: %s\n", resp.AdapterPath)
	if resp.LastLoadError != "" {
		fmt.Printf("Last load error: %s\n", resp.LastLoadError)
	}
	return nil
}
