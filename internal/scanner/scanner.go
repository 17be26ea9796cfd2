// Package scanner reads Rivals 2 client logs and extracts the two event
// grammars the rest of the pipeline cares about: rank-update lines and
// per-game match-duration lines. Classification is substring/regex search,
// never full-line equality, because the client prefixes every statement with
// a variable header.
package scanner

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Marker substrings identifying the two grammars.
const (
	RankUpdateMarker = "URivalsRankUpdateMessage::OnReceivedFromServer"
	DurationMarker   = "RivalsCharacterXpEndMatchReportMessage::OnReceivedFromServer LocalPlayerIndex 0, matchDuration"
)

var (
	// durationRe captures the single integer payload of a duration report.
	durationRe = regexp.MustCompile(`RivalsCharacterXpEndMatchReportMessage::OnReceivedFromServer LocalPlayerIndex 0, matchDuration (\d+)`)

	// numberRe pulls every signed integer from a line; the rank-update
	// payload is the last six of them.
	numberRe = regexp.MustCompile(`-?\d+`)

	// dateRe matches the bracketed [YYYY.MM.DD-HH.MM.SS timestamp the
	// client embeds in every statement.
	dateRe = regexp.MustCompile(`\[(\d{4}\.\d{2}\.\d{2})-(\d{2}\.\d{2}\.\d{2})`)
)

// Kind classifies a scanned event.
type Kind int

const (
	RankUpdate Kind = iota
	Duration
)

// Event is one matched log line. File and Line preserve discovery order; the
// correlator leans on them for its trailing-duration look-ahead.
type Event struct {
	Kind Kind
	File string
	Line int
	Raw  string
}

// Scanner extracts events from log files.
type Scanner struct {
	log zerolog.Logger
}

// New returns a Scanner that logs extraction warnings to log.
func New(log zerolog.Logger) *Scanner {
	return &Scanner{log: log}
}

// Scan reads every file fully (client rotation bounds their size) and
// returns matched events in file order then line order. A missing or
// unreadable file is a hard error for the whole scan; silent skips would
// hide lost matches.
func (s *Scanner) Scan(files []string) ([]Event, error) {
	var events []Event
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read log %s: %w", path, err)
		}
		lines := strings.Split(string(data), "\n")
		for i, line := range lines {
			switch {
			case strings.Contains(line, DurationMarker):
				events = append(events, Event{Kind: Duration, File: path, Line: i, Raw: strings.TrimSpace(line)})
			case strings.Contains(line, RankUpdateMarker):
				events = append(events, Event{Kind: RankUpdate, File: path, Line: i, Raw: strings.TrimSpace(line)})
			}
		}
	}
	return events, nil
}

// RankPayload extracts the six trailing integers of a rank-update line:
// newElo, oldElo, eloChange, gameNumber, totalWins, winStreak.
func RankPayload(line string) ([6]int, error) {
	var payload [6]int
	numbers := numberRe.FindAllString(line, -1)
	if len(numbers) < 6 {
		return payload, fmt.Errorf("scanner: want 6 trailing integers, found %d", len(numbers))
	}
	tail := numbers[len(numbers)-6:]
	for i, n := range tail {
		v, err := strconv.Atoi(n)
		if err != nil {
			return payload, fmt.Errorf("scanner: parse %q: %w", n, err)
		}
		payload[i] = v
	}
	return payload, nil
}

// DurationPayload extracts the duration value of a duration line. The unit
// is whatever the client reports; treat it as opaque.
func DurationPayload(line string) (int, bool) {
	m := durationRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// EventDate parses the embedded timestamp of a line. A line without the
// token, or with one that fails to parse, yields a zero time; the parse
// failure is logged because it usually means the grammar drifted.
func (s *Scanner) EventDate(line string) time.Time {
	m := dateRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}
	}
	t, err := time.Parse("2006.01.02 15.04.05", m[1]+" "+m[2])
	if err != nil {
		s.log.Warn().Str("token", m[0]).Msg("date token matched but failed to parse")
		return time.Time{}
	}
	return t
}
