package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sillypears/rivals2-log-parser/internal/correlate"
	"github.com/sillypears/rivals2-log-parser/internal/report"
	"github.com/sillypears/rivals2-log-parser/internal/scanner"
)

var durationsCmd = &cobra.Command{
	Use:   "durations [logfile...]",
	Short: "Show per-match game durations without touching the store",
	RunE:  runDurations,
}

func runDurations(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		files = cfg.LogFiles()
	}

	events, err := scanner.New(log).Scan(files)
	if err != nil {
		return err
	}

	matches := correlate.Correlate(events)
	if len(matches) == 0 {
		cmd.Println("No ranked matches found in the given logs.")
		return nil
	}

	report.PrintDurationTable(os.Stdout, matches)
	return nil
}
