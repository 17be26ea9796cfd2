// Package correlate attaches per-game duration reports to the rank-update
// events they belong to. The client emits the two streams asynchronously:
// durations usually precede the match's rank update, but the final game's
// duration can land a few lines after it, and restarts double-report a
// duration without a second game having happened.
package correlate

import (
	"github.com/sillypears/rivals2-log-parser/internal/scanner"
)

// lookAheadLines is how far past a rank-update line a trailing duration may
// legitimately appear.
const lookAheadLines = 5

// maxGames caps durations at the ranked best-of-3 format.
const maxGames = 3

// Ratings is the six-integer payload of a rank-update line plus the
// durations attached to that match.
type Ratings struct {
	NewElo     int
	OldElo     int
	Delta      int
	GameNumber int
	TotalWins  int
	WinStreak  int
	Durations  []int
}

// Correlate walks the scanned events in order and returns, per ranked game
// number, the rank-update payload with its 0–3 durations.
//
// Single forward pass with one cursor. A duration consumed by the look-ahead
// is remembered by index so the main pass skips it instead of double-counting
// it into the next match's buffer. Buffers reset at file boundaries: a
// rotated log cannot hold durations for a match reported in the next file.
func Correlate(events []scanner.Event) map[int]Ratings {
	results := make(map[int]Ratings)

	var buffer []int
	consumed := -1
	currentFile := ""

	for i := 0; i < len(events); i++ {
		ev := events[i]
		if ev.File != currentFile {
			currentFile = ev.File
			buffer = buffer[:0]
			consumed = -1
		}
		if i == consumed {
			continue
		}

		switch ev.Kind {
		case scanner.Duration:
			if v, ok := scanner.DurationPayload(ev.Raw); ok {
				buffer = append(buffer, v)
			}

		case scanner.RankUpdate:
			payload, err := scanner.RankPayload(ev.Raw)
			if err != nil {
				continue
			}

			// Look ahead for one trailing duration emitted just after
			// the rank update.
			trailing, trailingIdx, ok := findTrailing(events, i)
			combined := append([]int(nil), buffer...)
			if ok {
				combined = append(combined, trailing)
				consumed = trailingIdx
			}

			results[payload[3]] = Ratings{
				NewElo:     payload[0],
				OldElo:     payload[1],
				Delta:      payload[2],
				GameNumber: payload[3],
				TotalWins:  payload[4],
				WinStreak:  payload[5],
				Durations:  clean(combined),
			}
			buffer = buffer[:0]
		}
	}
	return results
}

// findTrailing scans forward from the rank-update at index i for a duration
// event within lookAheadLines raw lines of the same file.
func findTrailing(events []scanner.Event, i int) (value, index int, ok bool) {
	base := events[i]
	for j := i + 1; j < len(events); j++ {
		ev := events[j]
		if ev.File != base.File || ev.Line > base.Line+lookAheadLines {
			break
		}
		if ev.Kind != scanner.Duration {
			continue
		}
		if v, found := scanner.DurationPayload(ev.Raw); found {
			return v, j, true
		}
	}
	return 0, 0, false
}

// clean collapses consecutive duplicate durations (a client-side duplicate
// report, not a second game) and caps the result at maxGames.
func clean(durations []int) []int {
	cleaned := make([]int, 0, len(durations))
	for _, d := range durations {
		if len(cleaned) == 0 || d != cleaned[len(cleaned)-1] {
			cleaned = append(cleaned, d)
		}
	}
	if len(cleaned) > maxGames {
		cleaned = cleaned[:maxGames]
	}
	return cleaned
}
