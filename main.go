package main

import (
	"os"

	"github.com/scaudit/scaudit-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
