// Package parser turns rank-update log lines into match records, estimating
// the opponent's rating from the observed delta along the way.
package parser

import (
	"github.com/rs/zerolog"

	"github.com/sillypears/rivals2-log-parser/internal/elo"
	"github.com/sillypears/rivals2-log-parser/internal/model"
	"github.com/sillypears/rivals2-log-parser/internal/scanner"
)

// Parser builds MatchRecords from scanned rank-update events.
type Parser struct {
	scan *scanner.Scanner
	log  zerolog.Logger
}

// New returns a Parser sharing the scanner's date extraction.
func New(scan *scanner.Scanner, log zerolog.Logger) *Parser {
	return &Parser{scan: scan, log: log}
}

// Parse converts one rank-update line into a MatchRecord.
//
// On extraction failure it returns the -1900 sentinel record instead of an
// error. That mirrors the contract this tool has always had: callers filter
// sentinels before submitting. A tagged error would be cleaner, but the
// sentinel is what downstream consumers look for, so it stays.
func (p *Parser) Parse(line string) model.MatchRecord {
	date := p.scan.EventDate(line)

	payload, err := scanner.RankPayload(line)
	if err != nil {
		p.log.Error().Err(err).Str("line", line).Msg("couldn't get ranks")
		return model.Sentinel(date)
	}

	rec := model.NewMatchRecord()
	rec.MatchDate = date
	rec.EloRankNew = payload[0]
	rec.EloRankOld = payload[1]
	rec.EloChange = payload[2]
	rec.RankedGameNumber = payload[3]
	rec.TotalWins = payload[4]
	rec.WinStreakValue = payload[5]

	outcome := elo.Loss
	if rec.EloChange >= 0 {
		outcome = elo.Win
	}
	// The log carries no observed opponent rating, so the estimator runs in
	// the post-placement regime. Streak 0: the line's streak counter already
	// includes this match.
	est, err := elo.EstimateOpponentRating(rec.EloRankOld, rec.EloChange, outcome, model.OpponentUnranked, 0, elo.EstablishedK)
	if err != nil {
		// Unreachable with a derived outcome; a hit here means the
		// estimator contract changed under us.
		p.log.Error().Err(err).Int("game", rec.RankedGameNumber).Msg("opponent estimate failed")
		return model.Sentinel(date)
	}
	rec.OpponentEstimatedElo = est

	return rec
}
