package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scaudit/scaudit-cli/internal/api"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in to the audit backend and store the session locally",
	Long: `Authenticates against the backend and stores the returned token,
username and theme preference in ~/.scaudit/session.json. All other
commands that need credentials read them from there.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	password := strings.TrimSpace(loginPassword)
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

	resp, err := client.Login(cmd.Context(), username, password)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("login failed: %s", apiErr.Message())
		}
		return fmt.Errorf("login failed: %w", err)
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

	fmt.Printf("Logged in as %s (server %s)\n", sess.Username, client.BaseURL())
	return nil
}
