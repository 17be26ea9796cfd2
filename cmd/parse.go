package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sillypears/rivals2-log-parser/internal/backend"
	"github.com/sillypears/rivals2-log-parser/internal/lookup"
	"github.com/sillypears/rivals2-log-parser/internal/model"
	"github.com/sillypears/rivals2-log-parser/internal/pipeline"
	"github.com/sillypears/rivals2-log-parser/internal/report"
	"github.com/sillypears/rivals2-log-parser/internal/storage"
)

var (
	contextPath string
	parseRemote bool
	parseTable  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [logfile...]",
	Short: "Scan game logs and record new ranked matches",
	Long: "Scan the given log files (or the configured game log directory) for rank " +
		"updates, correlate game durations, and record matches not seen before.",
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&contextPath, "context", "", "path to a match context JSON file (picks, stages, opponent)")
	parseCmd.Flags().BoolVar(&parseRemote, "remote", false, "submit matches to the backend instead of the local database")
	parseCmd.Flags().BoolVar(&parseTable, "table", false, "print added matches as a table")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	files := args
	if len(files) == 0 {
		files = cfg.LogFiles()
	}

	store, closeStore, err := openStore(parseRemote)
	if err != nil {
		return err
	}
	defer closeStore()

	enrich, err := loadEnrichment(ctx, contextPath)
	if err != nil {
		return err
	}

	p := pipeline.New(store, log)
	records, err := p.Process(ctx, files, enrich)
	if err != nil {
		if errors.Is(err, pipeline.ErrStoreUnavailable) {
			return fmt.Errorf("store unreachable, no matches recorded: %w", err)
		}
		return err
	}

	report.PrintRunSummary(os.Stdout, records)
	if parseTable && len(records) > 0 {
		report.PrintMatchTable(os.Stdout, records)
	}
	return nil
}

// openStore picks the match store: the backend API when remote is set,
// otherwise the local sqlite database.
func openStore(remote bool) (pipeline.Store, func(), error) {
	if remote {
		client := backend.New(cfg.Backend.Host, cfg.Backend.Port, cfg.Backend.Timeout)
		return client, func() {}, nil
	}
	db, err := storage.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return db, func() { db.Close() }, nil
}

// loadEnrichment reads a match context file and resolves its character,
// stage, and move names against the backend lookup tables.
func loadEnrichment(ctx context.Context, path string) (*model.Enrichment, error) {
	if path == "" {
		return nil, nil
	}

	mc, err := lookup.LoadContext(path)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	client := backend.New(cfg.Backend.Host, cfg.Backend.Port, cfg.Backend.Timeout)
	chars, err := client.Characters(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch characters: %w", err)
	}
	stages, err := client.Stages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stages: %w", err)
	}
	moves, err := client.Moves(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch moves: %w", err)
	}

	enrich := lookup.FromBackend(chars, stages, moves).Resolve(*mc)
	if enrich.OpponentElo == model.OpponentUnranked {
		enrich.OpponentElo = cfg.Match.OpponentEloDefault
	}
	return &enrich, nil
}
