package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scaudit/scaudit-cli/internal/api"
)

var (
	passwdOld string
	passwdNew string
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the account password",
	Long: `Changes the password of the logged-in account. Old and new password
are validated together before anything is sent. On success the local
session is cleared; log in again with the new password.`,
	Args: cobra.NoArgs,
	RunE: runPasswd,
}

func init() {
	passwdCmd.Flags().StringVar(&passwdOld, "old", "", "current password (prompted when omitted)")
	passwdCmd.Flags().StringVar(&passwdNew, "new", "", "new password (prompted when omitted)")
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	sess, err := store.Require()
	if err != nil {
		return err
	}

	oldPassword := strings.TrimSpace(passwdOld)
	if oldPassword == "" {
		if oldPassword, err = promptPassword("Current password"); err != nil {
			return err
		}
	}
	newPassword := strings.TrimSpace(passwdNew)
	if newPassword == "" {
		if newPassword, err = promptPassword("New password"); err != nil {
			return err
		}
	}

	client := newClient(cfg)
	msg, err := client.ChangePassword(cmd.Context(), sess.Username, oldPassword, newPassword, sess.Token)
	if err != nil {
		// The session stays untouched on failure.
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("password change failed: %s", apiErr.Message())
		}
		return fmt.Errorf("password change failed: %w", err)
	}

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}
