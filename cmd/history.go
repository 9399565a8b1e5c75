package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent local scans",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of scans to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	scans, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Println("No scans recorded yet.")
		return nil
	}

	for _, s := range scans {
		fmt.Printf("%s  %-24s  threshold %.2f  findings %d\n",
			s.CreatedAt.Local().Format(time.DateTime), s.Source, s.Threshold, len(s.Labels))
	}
	return nil
}
