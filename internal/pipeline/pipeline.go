// Package pipeline orchestrates a scan: extract match records from the logs,
// drop the ones the store already knows, enrich, and submit the rest.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sillypears/rivals2-log-parser/internal/correlate"
	"github.com/sillypears/rivals2-log-parser/internal/model"
	"github.com/sillypears/rivals2-log-parser/internal/parser"
	"github.com/sillypears/rivals2-log-parser/internal/scanner"
)

// ErrStoreUnavailable distinguishes "could not reach the store at all" from
// "ran and found nothing new". Only the up-front probe returns it.
var ErrStoreUnavailable = errors.New("match store unavailable")

// Store is the external collaborator that answers existence checks and
// accepts submissions. Both the local sqlite store and the backend API
// client implement it.
type Store interface {
	Ping(ctx context.Context) error
	MatchExists(ctx context.Context, gameNumber int, date time.Time) (bool, error)
	InsertMatch(ctx context.Context, rec model.MatchRecord) error
}

// Pipeline runs the scan-parse-correlate-dedup-submit sequence. All I/O is
// sequential; the caller is expected to run Process off the interactive
// thread if there is one.
type Pipeline struct {
	scan  *scanner.Scanner
	parse *parser.Parser
	store Store
	log   zerolog.Logger
}

// New returns a Pipeline submitting to store.
func New(store Store, log zerolog.Logger) *Pipeline {
	scan := scanner.New(log)
	return &Pipeline{
		scan:  scan,
		parse: parser.New(scan, log),
		store: store,
		log:   log,
	}
}

// Process scans the given log files and returns the records that were new in
// this pass, whether or not their individual submissions succeeded.
//
// Enrichment applies only when exactly one new match was found: with two or
// more, attribution of the per-game detail is ambiguous and the records go
// out with defaults. A per-record existence-check failure counts as
// "exists" (skip) — duplicates are harder to unwind than a record the next
// scan will pick up again.
func (p *Pipeline) Process(ctx context.Context, files []string, enrich *model.Enrichment) ([]model.MatchRecord, error) {
	if err := p.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	events, err := p.scan.Scan(files)
	if err != nil {
		return nil, err
	}
	durations := correlate.Correlate(events)

	var fresh []model.MatchRecord
	seen := make(map[int]bool)
	for _, ev := range events {
		if ev.Kind != scanner.RankUpdate {
			continue
		}
		rec := p.parse.Parse(ev.Raw)
		if rec.IsSentinel() {
			p.log.Warn().Str("file", ev.File).Int("line", ev.Line).Msg("skipping unparseable rank update")
			continue
		}
		if seen[rec.RankedGameNumber] {
			// Overlapping log files report the same counter; one record
			// per logical game.
			continue
		}
		seen[rec.RankedGameNumber] = true
		if r, ok := durations[rec.RankedGameNumber]; ok {
			rec.Durations = r.Durations
		}

		exists, err := p.store.MatchExists(ctx, rec.RankedGameNumber, rec.MatchDate)
		if err != nil {
			p.log.Error().Err(err).Int("game", rec.RankedGameNumber).Msg("existence check failed, skipping record")
			continue
		}
		if exists {
			p.log.Debug().Int("game", rec.RankedGameNumber).Msg("match exists")
			continue
		}
		fresh = append(fresh, rec)
	}

	if enrich != nil {
		if len(fresh) == 1 {
			enrich.Apply(&fresh[0])
		} else if len(fresh) > 1 {
			p.log.Warn().Int("new_matches", len(fresh)).Msg("multiple new matches, enrichment not applied")
		}
	}

	for i := range fresh {
		if err := p.store.InsertMatch(ctx, fresh[i]); err != nil {
			p.log.Error().Err(err).Int("game", fresh[i].RankedGameNumber).Msg("submit failed")
			continue
		}
		p.log.Info().
			Int("game", fresh[i].RankedGameNumber).
			Int("elo", fresh[i].EloRankNew).
			Msg("inserted match")
	}
	return fresh, nil
}
