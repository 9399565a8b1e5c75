package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/scaudit/scaudit-cli/internal/api"
	"github.com/scaudit/scaudit-cli/internal/config"
	"github.com/scaudit/scaudit-cli/internal/history"
	"github.com/scaudit/scaudit-cli/internal/session"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "scaudit",
	Short: "Client for the SCAudit smart-contract vulnerability detection service",
	Long: `scaudit submits smart-contract source code to a remote SCAudit inference
backend for vulnerability detection and manages the local account session
(login, logout, password change, theme preference).

The backend address comes from .scaudit.yml, the SCAUDIT_SERVER_URL
environment variable, or the --server flag.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".scaudit.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the config file and applies the --server override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newClient builds the API client from config.
func newClient(cfg *config.Config) *api.Client {
	return api.New(cfg.ServerURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

// openSessionStore returns the session store rooted at the configured data
// directory (default ~/.scaudit).
func openSessionStore(cfg *config.Config) (*session.Store, error) {
	dir, err := resolveDataDir(cfg)
	if err != nil {
		return nil, err
	}
	return session.NewStore(dir), nil
}

// openHistory opens the local scan history database.
func openHistory(cfg *config.Config) (*history.Store, error) {
	dir, err := resolveDataDir(cfg)
	if err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dir, "history.db"))
}

func resolveDataDir(cfg *config.Config) (string, error) {
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	return session.DefaultDir()
}
