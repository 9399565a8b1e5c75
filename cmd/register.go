package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scaudit/scaudit-cli/internal/api"
)

var registerPassword string

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account and log in",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "password (prompted when omitted)")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	password := strings.TrimSpace(registerPassword)
	if password == "" {
		var err error
		if password, err = promptPassword("Password"); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	resp, err := client.Register(cmd.Context(), username, password)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("registration failed: %s", apiErr.Message())
		}
		return fmt.Errorf("registration failed: %w", err)
	}

	store, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	sess, err := store.Load()
	if err != nil {
		return err
	}
	sess.Username = resp.Username
	sess.Token = resp.Token
	if resp.Theme != "" {
		sess.Theme = resp.Theme
	}
	if err := store.Save(sess); err != nil {
		return err
	}

	fmt.Printf("Account %s created, logged in.\n", sess.Username)
	return nil
}
