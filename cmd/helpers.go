package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// diagLogger returns the sink for best-effort failure diagnostics (logout
// notification, theme sync). These are never surfaced as command errors.
func diagLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// parseThreshold parses the detection threshold, falling back to 0.5 when
// the input is empty or unparsable.
func parseThreshold(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.5
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.5
	}
	return v
}

// promptPassword asks for a masked password. An empty answer or a cancelled
// prompt yields an error so callers abort before any network call.
func promptPassword(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s must not be empty", strings.ToLower(label))
	}
	return value, nil
}

// promptOptional asks for a value that may be left blank. Cancelling the
// prompt is treated the same as leaving it blank.
func promptOptional(label string) string {
	prompt := promptui.Prompt{Label: label}
	value, err := prompt.Run()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
