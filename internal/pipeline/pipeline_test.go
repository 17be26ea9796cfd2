package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sillypears/rivals2-log-parser/internal/model"
)

// fakeStore records calls and lets tests fail specific steps.
type fakeStore struct {
	pingErr   error
	existsErr error
	insertErr map[int]error

	known    map[int]bool
	inserted []model.MatchRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{known: make(map[int]bool), insertErr: make(map[int]error)}
}

func (s *fakeStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *fakeStore) MatchExists(ctx context.Context, gameNumber int, date time.Time) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.known[gameNumber], nil
}

func (s *fakeStore) InsertMatch(ctx context.Context, rec model.MatchRecord) error {
	if err := s.insertErr[rec.RankedGameNumber]; err != nil {
		return err
	}
	s.inserted = append(s.inserted, rec)
	s.known[rec.RankedGameNumber] = true
	return nil
}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Rivals2.log")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func rankLine(gameNumber, delta int) string {
	return fmt.Sprintf(
		"[2025.01.01-10.00.00:000][  0]Log: URivalsRankUpdateMessage::OnReceivedFromServer LocalPlayerIndex 0: 1021, 1010, %d, %d, 40, 3",
		delta, gameNumber)
}

func durationLine(value int) string {
	return fmt.Sprintf(
		"[2025.01.01-09.58.00:000][  0]Log: RivalsCharacterXpEndMatchReportMessage::OnReceivedFromServer LocalPlayerIndex 0, matchDuration %d",
		value)
}

func TestProcessEndToEnd(t *testing.T) {
	// Two-line log: one duration, then a loss with no opponent elo known.
	path := writeLog(t,
		durationLine(120),
		"[2025.01.01-10.00.00:000][  0]Log: URivalsRankUpdateMessage::OnReceivedFromServer LocalPlayerIndex 0: 970, 1000, -30, 12345, 40, 0",
	)
	store := newFakeStore()
	p := New(store, zerolog.Nop())

	got, err := p.Process(context.Background(), []string{path}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	rec := got[0]
	if rec.EloChange != -30 || rec.RankedGameNumber != 12345 {
		t.Errorf("record = %+v", rec)
	}
	if rec.OpponentEstimatedElo != 809 {
		t.Errorf("estimate = %d, want 809 (loss branch)", rec.OpponentEstimatedElo)
	}
	if !reflect.DeepEqual(rec.Durations, []int{120}) {
		t.Errorf("durations = %v, want [120]", rec.Durations)
	}
	if len(store.inserted) != 1 {
		t.Errorf("inserted %d records, want 1", len(store.inserted))
	}
}

func TestProcessSecondRunFindsNothingNew(t *testing.T) {
	path := writeLog(t, rankLine(100, 11), rankLine(101, -5))
	store := newFakeStore()
	p := New(store, zerolog.Nop())

	first, err := p.Process(context.Background(), []string{path}, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first run found %d records, want 2", len(first))
	}

	second, err := p.Process(context.Background(), []string{path}, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second run found %d records, want 0", len(second))
	}
	if len(store.inserted) != 2 {
		t.Errorf("inserted %d total, want 2", len(store.inserted))
	}
}

func TestProcessStoreUnavailable(t *testing.T) {
	path := writeLog(t, rankLine(100, 11))
	store := newFakeStore()
	store.pingErr = errors.New("connection refused")
	p := New(store, zerolog.Nop())

	_, err := p.Process(context.Background(), []string{path}, nil)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestProcessExistenceErrorSkipsRecord(t *testing.T) {
	path := writeLog(t, rankLine(100, 11))
	store := newFakeStore()
	store.existsErr = errors.New("timeout")
	p := New(store, zerolog.Nop())

	got, err := p.Process(context.Background(), []string{path}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	// Conservative against duplicate submission: a failed check counts as
	// "exists".
	if len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestProcessSubmitFailureDoesNotAbort(t *testing.T) {
	path := writeLog(t, rankLine(100, 11), rankLine(101, -5))
	store := newFakeStore()
	store.insertErr[100] = errors.New("backend 500")
	p := New(store, zerolog.Nop())

	got, err := p.Process(context.Background(), []string{path}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	// Both records survive the run; only one landed in the store.
	if len(got) != 2 {
		t.Errorf("got %d records, want 2", len(got))
	}
	if len(store.inserted) != 1 || store.inserted[0].RankedGameNumber != 101 {
		t.Errorf("inserted = %+v, want only game 101", store.inserted)
	}
}

func TestProcessEnrichmentSingleMatch(t *testing.T) {
	path := writeLog(t, rankLine(100, 11))
	store := newFakeStore()
	p := New(store, zerolog.Nop())

	enrich := model.NewEnrichment()
	enrich.OpponentElo = 987
	enrich.OpponentName = "ForsenCD"
	enrich.Games[0].OpponentPick = 7
	enrich.Games[0].Stage = 3
	enrich.Games[0].Winner = 1
	enrich.Games[0].Duration = 145

	got, err := p.Process(context.Background(), []string{path}, &enrich)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	rec := got[0]
	if rec.OpponentElo != 987 || rec.OpponentName != "ForsenCD" {
		t.Errorf("opponent fields = %d/%q", rec.OpponentElo, rec.OpponentName)
	}
	if rec.Games[0].OpponentPick != 7 || rec.Games[0].Stage != 3 {
		t.Errorf("game 1 = %+v", rec.Games[0])
	}
	if !reflect.DeepEqual(rec.Durations, []int{145}) {
		t.Errorf("durations = %v, want context-supplied [145]", rec.Durations)
	}
}

func TestProcessEnrichmentAmbiguousSkipped(t *testing.T) {
	path := writeLog(t, rankLine(100, 11), rankLine(101, -5))
	store := newFakeStore()
	p := New(store, zerolog.Nop())

	enrich := model.NewEnrichment()
	enrich.Games[0].OpponentPick = 7

	got, err := p.Process(context.Background(), []string{path}, &enrich)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	for _, rec := range got {
		if rec.Games[0].OpponentPick != model.Unknown {
			t.Errorf("game %d enriched despite ambiguity: %+v", rec.RankedGameNumber, rec.Games[0])
		}
	}
}

func TestProcessDuplicateCounterAcrossFiles(t *testing.T) {
	// Overlapping live + rotated logs reporting the same match.
	a := writeLog(t, rankLine(100, 11))
	b := writeLog(t, rankLine(100, 11))
	store := newFakeStore()
	p := New(store, zerolog.Nop())

	got, err := p.Process(context.Background(), []string{a, b}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records for one logical game, want 1", len(got))
	}
}

func TestProcessSentinelNotSubmitted(t *testing.T) {
	path := writeLog(t,
		"URivalsRankUpdateMessage::OnReceivedFromServer mangled",
		rankLine(100, 11),
	)
	store := newFakeStore()
	p := New(store, zerolog.Nop())

	got, err := p.Process(context.Background(), []string{path}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 1 || got[0].RankedGameNumber != 100 {
		t.Errorf("got %+v, want only game 100", got)
	}
}
