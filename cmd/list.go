package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sillypears/rivals2-log-parser/internal/report"
	"github.com/sillypears/rivals2-log-parser/internal/storage"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum number of matches to show, 0 for all")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if season, ok, err := db.CurrentSeason(cmd.Context(), time.Now()); err == nil && ok {
		fmt.Fprintf(os.Stdout, "Season: %s\n", season.DisplayName)
	}

	matches, err := db.ListMatches(cmd.Context(), listLimit)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'rivals2-log-parser parse' to add some.")
		return nil
	}

	report.PrintMatchTable(os.Stdout, matches)
	return nil
}
