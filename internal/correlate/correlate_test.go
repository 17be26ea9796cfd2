package correlate

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/sillypears/rivals2-log-parser/internal/scanner"
)

func rankEvent(file string, line, gameNumber, delta int) scanner.Event {
	return scanner.Event{
		Kind: scanner.RankUpdate,
		File: file,
		Line: line,
		Raw: fmt.Sprintf(
			"[2025.01.01-10.00.00 URivalsRankUpdateMessage::OnReceivedFromServer LocalPlayerIndex 0: 1021, 1010, %d, %d, 40, 3",
			delta, gameNumber),
	}
}

func durationEvent(file string, line, value int) scanner.Event {
	return scanner.Event{
		Kind: scanner.Duration,
		File: file,
		Line: line,
		Raw: fmt.Sprintf(
			"[2025.01.01-09.58.00 RivalsCharacterXpEndMatchReportMessage::OnReceivedFromServer LocalPlayerIndex 0, matchDuration %d",
			value),
	}
}

func TestCorrelateTrailingDurationWithinLookahead(t *testing.T) {
	events := []scanner.Event{
		rankEvent("a.log", 10, 5, 11),
		durationEvent("a.log", 13, 120),
	}
	results := Correlate(events)
	got, ok := results[5]
	if !ok {
		t.Fatal("expected result for game 5")
	}
	if !reflect.DeepEqual(got.Durations, []int{120}) {
		t.Errorf("durations = %v, want [120]", got.Durations)
	}
}

func TestCorrelateTrailingBeyondLookaheadIgnored(t *testing.T) {
	events := []scanner.Event{
		rankEvent("a.log", 10, 5, 11),
		durationEvent("a.log", 16, 120), // 6 lines later: next match's game 1
	}
	results := Correlate(events)
	if got := results[5]; len(got.Durations) != 0 {
		t.Errorf("durations = %v, want none beyond the look-ahead window", got.Durations)
	}
}

func TestCorrelateConsumedTrailingNotDoubleCounted(t *testing.T) {
	events := []scanner.Event{
		durationEvent("a.log", 1, 90),
		durationEvent("a.log", 4, 77),
		rankEvent("a.log", 8, 5, 11),
		durationEvent("a.log", 11, 120), // trailing for game 5
		rankEvent("a.log", 40, 6, -4),
	}
	results := Correlate(events)
	if got := results[5]; !reflect.DeepEqual(got.Durations, []int{90, 77, 120}) {
		t.Errorf("game 5 durations = %v, want [90 77 120]", got.Durations)
	}
	// The 120 was consumed by game 5's look-ahead; game 6 starts empty.
	if got := results[6]; len(got.Durations) != 0 {
		t.Errorf("game 6 durations = %v, want none", got.Durations)
	}
}

func TestCorrelateCollapsesConsecutiveDuplicates(t *testing.T) {
	events := []scanner.Event{
		durationEvent("a.log", 1, 90),
		durationEvent("a.log", 2, 90),
		durationEvent("a.log", 3, 77),
		rankEvent("a.log", 10, 7, 11),
	}
	results := Correlate(events)
	if got := results[7]; !reflect.DeepEqual(got.Durations, []int{90, 77}) {
		t.Errorf("durations = %v, want [90 77]", got.Durations)
	}
}

func TestCorrelateCapsAtThree(t *testing.T) {
	events := []scanner.Event{
		durationEvent("a.log", 1, 10),
		durationEvent("a.log", 2, 20),
		durationEvent("a.log", 3, 30),
		durationEvent("a.log", 4, 40),
		rankEvent("a.log", 10, 8, 11),
	}
	results := Correlate(events)
	if got := results[8]; !reflect.DeepEqual(got.Durations, []int{10, 20, 30}) {
		t.Errorf("durations = %v, want first three", got.Durations)
	}
}

func TestCorrelateDanglingDurationDropped(t *testing.T) {
	events := []scanner.Event{
		rankEvent("a.log", 10, 9, 11),
		durationEvent("a.log", 50, 99), // no rank update follows before EOF
	}
	results := Correlate(events)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if got := results[9]; len(got.Durations) != 0 {
		t.Errorf("durations = %v, want none", got.Durations)
	}
}

func TestCorrelateBufferResetsAtFileBoundary(t *testing.T) {
	events := []scanner.Event{
		durationEvent("backup-1.log", 100, 90),
		rankEvent("backup-2.log", 5, 11, -3),
	}
	results := Correlate(events)
	if got := results[11]; len(got.Durations) != 0 {
		t.Errorf("durations = %v, durations must not cross log files", got.Durations)
	}
}

func TestCorrelatePayloadFields(t *testing.T) {
	results := Correlate([]scanner.Event{rankEvent("a.log", 1, 12345, -30)})
	got := results[12345]
	if got.NewElo != 1021 || got.OldElo != 1010 || got.Delta != -30 || got.TotalWins != 40 || got.WinStreak != 3 {
		t.Errorf("payload = %+v", got)
	}
}
