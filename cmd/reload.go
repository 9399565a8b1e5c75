package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scaudit/scaudit-cli/internal/api"
)

var (
	reloadAdapter string
	reloadBase    string
	reloadPrompt  bool
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Swap the backend's active model",
	Long: `Asks the backend to reload its model. Paths left unset are omitted
from the request entirely, so the server keeps its current value for
them. With --interactive the paths are prompted for; a blank answer
means "keep current".`,
	Args: cobra.NoArgs,
	RunE: runReload,
}

func init() {
	reloadCmd.Flags().StringVar(&reloadAdapter, "adapter", "", "LoRA adapter directory")
	reloadCmd.Flags().StringVar(&reloadBase, "base", "", "base model directory")
	reloadCmd.Flags().BoolVarP(&reloadPrompt, "interactive", "i", false, "prompt for the paths")
	rootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, args []string) error {
	adapter := reloadAdapter
	base := reloadBase
	if reloadPrompt {
		adapter = promptOptional("Adapter path (blank keeps current)")
		base = promptOptional("Base model path (blank keeps current)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	fmt.Println("Reloading model, this can take a while...")
	resp, err := client.Reload(cmd.Context(), adapter, base)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("reload failed: %s", apiErr.Message())
		}
		return fmt.Errorf("reload failed: %w", err)
	}

	fmt.Printf("Model reloaded (base %s, adapter %s)\n", valueOrCurrent(resp.Base), valueOrCurrent(resp.Adapter))
	return nil
}

func valueOrCurrent(s string) string {
	if s == "" {
		return "(unchanged)"
	}
	return s
}
