package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local session",
	Long: `Notifies the backend that the session is over (best effort), then
removes the locally stored username, token and theme. The local state is
cleared even when the server cannot be reached.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
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

	if sess.LoggedIn() {
		client := newClient(cfg)
		if err := client.Logout(cmd.Context(), sess.Username, sess.Token); err != nil {
			diagLogger().Warn("logout notification failed", "username", sess.Username, "error", err)
		}
	}

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}
