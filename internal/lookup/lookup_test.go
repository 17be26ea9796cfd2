package lookup

import (
	"testing"

	"github.com/sillypears/rivals2-log-parser/internal/backend"
	"github.com/sillypears/rivals2-log-parser/internal/model"
)

func testTables() Tables {
	return FromBackend(
		[]backend.Character{
			{ID: 2, DisplayName: "Loxodont"},
			{ID: 7, DisplayName: "Kragg"},
		},
		[]backend.Stage{
			{ID: 3, DisplayName: "Aethereal Gates"},
			{ID: 5, DisplayName: "Hodojo"},
		},
		[]backend.Move{
			{ID: 11, DisplayName: "Up Special"},
			{ID: 12, DisplayName: "Forward Strong"},
		},
	)
}

func TestResolveNames(t *testing.T) {
	tables := testTables()

	if got := tables.CharacterID("Kragg"); got != 7 {
		t.Errorf("CharacterID = %d, want 7", got)
	}
	if got := tables.StageID("Hodojo"); got != 5 {
		t.Errorf("StageID = %d, want 5", got)
	}
	// Top-move marker is cosmetic.
	if got := tables.MoveID("Up Special *"); got != 11 {
		t.Errorf("MoveID = %d, want 11", got)
	}
	for _, name := range []string{"", "N/A", "Nobody"} {
		if got := tables.CharacterID(name); got != model.Unknown {
			t.Errorf("CharacterID(%q) = %d, want Unknown", name, got)
		}
	}
}

func TestResolveContext(t *testing.T) {
	tables := testTables()
	mc := MatchContext{
		OpponentElo:  987,
		OpponentName: "ForsenCD",
		MyCharacter:  "Loxodont",
		Games: [3]GameContext{
			{OpponentPick: "Kragg", Stage: "Aethereal Gates", FinalMove: "Up Special", OpponentWon: false, Duration: 145},
			{OpponentPick: "Kragg", Stage: "Hodojo", FinalMove: "Forward Strong", OpponentWon: true},
			{}, // game 3 not played
		},
	}

	e := tables.Resolve(mc)
	if e.OpponentElo != 987 || e.OpponentName != "ForsenCD" {
		t.Errorf("opponent = %d/%q", e.OpponentElo, e.OpponentName)
	}
	g1 := e.Games[0]
	if g1.CharPick != 2 || g1.OpponentPick != 7 || g1.Stage != 3 || g1.FinalMoveID != 11 {
		t.Errorf("game 1 = %+v", g1)
	}
	if g1.Winner != 1 || g1.Duration != 145 {
		t.Errorf("game 1 winner/duration = %d/%d", g1.Winner, g1.Duration)
	}
	if e.Games[1].Winner != 2 {
		t.Errorf("game 2 winner = %d, want 2 (opponent)", e.Games[1].Winner)
	}
	if e.Games[1].Duration != model.Unknown {
		t.Errorf("game 2 duration = %d, want unset", e.Games[1].Duration)
	}
	if e.Games[2] != model.NewGameDetail() {
		t.Errorf("game 3 = %+v, want untouched", e.Games[2])
	}
	// Last played game's move becomes the match's final move.
	if e.FinalMoveID != 12 {
		t.Errorf("final move = %d, want 12", e.FinalMoveID)
	}
}

func TestResolveUnrankedOpponentDefault(t *testing.T) {
	e := testTables().Resolve(MatchContext{})
	if e.OpponentElo != model.OpponentUnranked {
		t.Errorf("opponent elo = %d, want unranked default", e.OpponentElo)
	}
}
