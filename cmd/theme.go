package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the UI theme preference",
	Long: `Manages the light/dark theme preference. The value is persisted
locally and, when logged in, mirrored to the server so other clients
pick it up. Server sync is best effort; a failed sync never loses the
local change.`,
	Args: cobra.NoArgs,
	RunE: runThemeShow,
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip between light and dark",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyTheme(cmd, "")
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <light|dark>",
	Short: "Set the theme explicitly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "light" && args[0] != "dark" {
			return fmt.Errorf("theme must be light or dark, got %q", args[0])
		}
		return applyTheme(cmd, args[0])
	},
}

func init() {
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	sess, err := store.Load()
	if err != nil {
		return err
	}
	fmt.Println(sess.ThemeOrDefault())
	return nil
}

// applyTheme persists the theme (empty means toggle) and mirrors it to the
// server when a username is stored.
func applyTheme(cmd *cobra.Command, theme string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	sess, err := store.Load()
	if err != nil {
		return err
	}

	if theme == "" {
		if sess.ThemeOrDefault() == "light" {
			theme = "dark"
		} else {
			theme = "light"
		}
	}
	sess.Theme = theme
	if err := store.Save(sess); err != nil {
		return err
	}

	if sess.Username != "" {
		client := newClient(cfg)
		if err := client.SyncTheme(cmd.Context(), sess.Username, theme, sess.Token); err != nil {
			diagLogger().Warn("theme sync failed", "username", sess.Username, "error", err)
		}
	}

	fmt.Printf("Theme set to %s\n", theme)
	return nil
}
