// Package lookup holds the name→id tables for characters, stages and final
// moves. The tables are built once from backend data and passed into the
// enrichment step explicitly; nothing here is process-wide state.
package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sillypears/rivals2-log-parser/internal/backend"
	"github.com/sillypears/rivals2-log-parser/internal/model"
)

// Tables maps display names to backend ids.
type Tables struct {
	Characters map[string]int
	Stages     map[string]int
	Moves      map[string]int
}

// FromBackend builds lookup tables from the backend's lookup endpoints.
func FromBackend(chars []backend.Character, stages []backend.Stage, moves []backend.Move) Tables {
	t := Tables{
		Characters: make(map[string]int, len(chars)),
		Stages:     make(map[string]int, len(stages)),
		Moves:      make(map[string]int, len(moves)),
	}
	for _, c := range chars {
		t.Characters[c.DisplayName] = c.ID
	}
	for _, s := range stages {
		t.Stages[s.DisplayName] = s.ID
	}
	for _, m := range moves {
		t.Moves[m.DisplayName] = m.ID
	}
	return t
}

func idOf(table map[string]int, name string) int {
	name = strings.TrimSpace(strings.TrimSuffix(name, " *"))
	if name == "" || name == "N/A" {
		return model.Unknown
	}
	if id, ok := table[name]; ok {
		return id
	}
	return model.Unknown
}

// CharacterID resolves a character display name, model.Unknown when absent.
func (t Tables) CharacterID(name string) int { return idOf(t.Characters, name) }

// StageID resolves a stage display name, model.Unknown when absent.
func (t Tables) StageID(name string) int { return idOf(t.Stages, name) }

// MoveID resolves a final-move display name, model.Unknown when absent. A
// trailing " *" top-move marker is ignored.
func (t Tables) MoveID(name string) int { return idOf(t.Moves, name) }

// GameContext is the per-game slice of a context file, with picks by name.
type GameContext struct {
	OpponentPick string `json:"opponent_pick"`
	Stage        string `json:"stage"`
	FinalMove    string `json:"final_move"`
	OpponentWon  bool   `json:"opponent_won"`
	Duration     int    `json:"duration"`
}

// MatchContext is the caller-supplied enrichment for a single new match,
// as written by hand or exported from the companion UI.
type MatchContext struct {
	OpponentElo  int            `json:"opponent_elo"`
	OpponentName string         `json:"opponent_name"`
	MyCharacter  string         `json:"my_character"`
	Games        [3]GameContext `json:"games"`
	Notes        string         `json:"notes"`
}

// LoadContext reads a context file.
func LoadContext(path string) (*MatchContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context: %w", err)
	}
	var mc MatchContext
	if err := json.Unmarshal(data, &mc); err != nil {
		return nil, fmt.Errorf("parse context: %w", err)
	}
	return &mc, nil
}

// Resolve translates a names-based context into an id-based enrichment.
// Winner per game: 2 when the opponent won, 1 when the game was played,
// unset when no opponent pick was named. Durations <= 0 stay unset.
func (t Tables) Resolve(mc MatchContext) model.Enrichment {
	e := model.NewEnrichment()
	if mc.OpponentElo != 0 {
		e.OpponentElo = mc.OpponentElo
	}
	e.OpponentName = mc.OpponentName
	e.Notes = mc.Notes

	myChar := t.CharacterID(mc.MyCharacter)
	for i, g := range mc.Games {
		oppPick := t.CharacterID(g.OpponentPick)
		if oppPick == model.Unknown {
			continue // game not played
		}
		e.Games[i].CharPick = myChar
		e.Games[i].OpponentPick = oppPick
		e.Games[i].Stage = t.StageID(g.Stage)
		e.Games[i].FinalMoveID = t.MoveID(g.FinalMove)
		if g.OpponentWon {
			e.Games[i].Winner = 2
		} else {
			e.Games[i].Winner = 1
		}
		if g.Duration > 0 {
			e.Games[i].Duration = g.Duration
		}
		if e.Games[i].FinalMoveID != model.Unknown {
			e.FinalMoveID = e.Games[i].FinalMoveID
		}
	}
	return e
}
