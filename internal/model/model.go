// Package model defines the match record types shared by the scanner,
// parser, pipeline and stores.
package model

import (
	"fmt"
	"time"
)

// Unknown is the default for every optional per-game field: picks, stages,
// final moves and winners that the log cannot tell us about.
const Unknown = -1

// OpponentUnranked is the opponent-rating hint meaning "unranked or not
// observed". It selects the post-placement K regime in the estimator and is
// never a real rating.
const OpponentUnranked = -2

// SentinelEloChange marks a record produced from a line that failed numeric
// extraction. The value is far outside any delta the game can produce.
const SentinelEloChange = -1900

// GameDetail holds the optional enrichment for one game within a best-of-3
// match. All ids are backend ids; Unknown when not supplied.
type GameDetail struct {
	CharPick     int `json:"char_pick"`
	OpponentPick int `json:"opponent_pick"`
	Stage        int `json:"stage"`
	Winner       int `json:"winner"`
	FinalMoveID  int `json:"final_move_id"`
	Duration     int `json:"duration"`
}

// NewGameDetail returns a GameDetail with every field unset.
func NewGameDetail() GameDetail {
	return GameDetail{
		CharPick:     Unknown,
		OpponentPick: Unknown,
		Stage:        Unknown,
		Winner:       Unknown,
		FinalMoveID:  Unknown,
		Duration:     Unknown,
	}
}

// MatchRecord is one completed ranked match reconstructed from the log.
// Identity is RankedGameNumber, the per-account counter reported by the game
// client, never a database id.
type MatchRecord struct {
	MatchDate        time.Time
	EloRankNew       int
	EloRankOld       int
	EloChange        int
	RankedGameNumber int
	TotalWins        int
	WinStreakValue   int

	// OpponentElo is the observed rating supplied by the user; the
	// estimated value is derived from EloChange. Distinct sources, never
	// conflated.
	OpponentElo          int
	OpponentEstimatedElo int
	OpponentName         string

	// Durations holds at most three per-game durations attached by the
	// correlator, already collapsed for consecutive duplicates.
	Durations []int

	Games [3]GameDetail

	FinalMoveID int
	Notes       string
}

// NewMatchRecord returns a record with all optional fields unset.
func NewMatchRecord() MatchRecord {
	return MatchRecord{
		EloRankNew:           Unknown,
		EloRankOld:           Unknown,
		EloChange:            Unknown,
		RankedGameNumber:     Unknown,
		TotalWins:            Unknown,
		WinStreakValue:       Unknown,
		OpponentElo:          Unknown,
		OpponentEstimatedElo: Unknown,
		Games:                [3]GameDetail{NewGameDetail(), NewGameDetail(), NewGameDetail()},
		FinalMoveID:          Unknown,
	}
}

// Sentinel returns the error record emitted when a rank-update line fails
// numeric extraction. Kept byte-compatible with the original tool's contract:
// EloChange -1900, WinStreakValue 0, everything else unset.
func Sentinel(date time.Time) MatchRecord {
	r := NewMatchRecord()
	r.MatchDate = date
	r.EloChange = SentinelEloChange
	r.WinStreakValue = 0
	return r
}

// IsSentinel reports whether the record is a parse-failure sentinel rather
// than a real match.
func (r MatchRecord) IsSentinel() bool {
	return r.EloChange == SentinelEloChange
}

// Win reports the match outcome implied by the rating delta: non-negative
// delta is a win.
func (r MatchRecord) Win() bool {
	return r.EloChange >= 0
}

// Summary renders the compact "1021(+11)" form used in run summaries.
func (r MatchRecord) Summary() string {
	return fmt.Sprintf("%d(%+d)", r.EloRankNew, r.EloChange)
}

// Enrichment is the caller-supplied per-game detail merged into a record when
// a scan finds exactly one new match. Field names mirror the backend's
// insert payload.
type Enrichment struct {
	OpponentElo  int           `json:"opponent_elo"`
	OpponentName string        `json:"opponent_name"`
	Games        [3]GameDetail `json:"games"`
	FinalMoveID  int           `json:"final_move_id"`
	Notes        string        `json:"notes"`
}

// NewEnrichment returns an Enrichment with every field unset.
func NewEnrichment() Enrichment {
	return Enrichment{
		OpponentElo: OpponentUnranked,
		Games:       [3]GameDetail{NewGameDetail(), NewGameDetail(), NewGameDetail()},
		FinalMoveID: Unknown,
	}
}

// Apply merges the enrichment into the record. Context durations override
// correlated ones only where supplied.
func (e Enrichment) Apply(r *MatchRecord) {
	r.OpponentElo = e.OpponentElo
	r.OpponentName = e.OpponentName
	r.FinalMoveID = e.FinalMoveID
	r.Notes = e.Notes
	for i := range r.Games {
		r.Games[i] = e.Games[i]
	}
	var durations []int
	for _, g := range e.Games {
		if g.Duration != Unknown {
			durations = append(durations, g.Duration)
		}
	}
	if len(durations) > 0 {
		r.Durations = durations
	}
}

// Season is a ranked season window. Existence checks are scoped to the
// season containing the match date.
type Season struct {
	ID          int
	StartDate   time.Time
	EndDate     time.Time
	ShortName   string
	DisplayName string
}

// Contains reports whether t falls inside the season window. A zero t never
// matches.
func (s Season) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}
