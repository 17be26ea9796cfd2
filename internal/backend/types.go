package backend

import (
	"time"

	"github.com/sillypears/rivals2-log-parser/internal/model"
)

// envelope is the backend's uniform response wrapper.
type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

// Character is one entry from /characters.
type Character struct {
	ID            int    `json:"id"`
	DisplayName   string `json:"display_name"`
	CharacterName string `json:"character_name"`
	ListOrder     int    `json:"list_order"`
}

// Stage is one entry from /stages.
type Stage struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	StageType   string `json:"stage_type"`
	CounterPick int    `json:"counter_pick"`
	ListOrder   int    `json:"list_order"`
}

// Move is one entry from /movelist.
type Move struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	ListOrder   int    `json:"list_order"`
}

// TopMove is one entry from /movelist/top.
type TopMove struct {
	FinalMoveName string `json:"final_move_name"`
}

// CurrentTier is the /current_tier payload: the player's standing as the
// backend knows it.
type CurrentTier struct {
	CurrentElo     int    `json:"current_elo"`
	Tier           string `json:"tier"`
	TierShort      string `json:"tier_short"`
	LastGameNumber int    `json:"last_game_number"`
	TotalWins      int    `json:"total_wins"`
	WinStreakValue int    `json:"win_streak_value"`
}

// matchExistsData is the /match-exists payload.
type matchExistsData struct {
	Exists bool `json:"exists"`
}

// insertPayload is the flat JSON shape /insert-match accepts; field names
// match the backend's column names.
type insertPayload struct {
	MatchDate        string `json:"match_date"`
	EloRankNew       int    `json:"elo_rank_new"`
	EloRankOld       int    `json:"elo_rank_old"`
	EloChange        int    `json:"elo_change"`
	MatchWin         int    `json:"match_win"`
	RankedGameNumber int    `json:"ranked_game_number"`
	TotalWins        int    `json:"total_wins"`
	WinStreakValue   int    `json:"win_streak_value"`
	OpponentElo      int    `json:"opponent_elo"`
	OpponentEstElo   int    `json:"opponent_estimated_elo"`
	OpponentName     string `json:"opponent_name"`

	Game1CharPick    int `json:"game_1_char_pick"`
	Game1OppPick     int `json:"game_1_opponent_pick"`
	Game1Stage       int `json:"game_1_stage"`
	Game1Winner      int `json:"game_1_winner"`
	Game1FinalMoveID int `json:"game_1_final_move_id"`
	Game1Duration    int `json:"game_1_duration"`

	Game2CharPick    int `json:"game_2_char_pick"`
	Game2OppPick     int `json:"game_2_opponent_pick"`
	Game2Stage       int `json:"game_2_stage"`
	Game2Winner      int `json:"game_2_winner"`
	Game2FinalMoveID int `json:"game_2_final_move_id"`
	Game2Duration    int `json:"game_2_duration"`

	Game3CharPick    int `json:"game_3_char_pick"`
	Game3OppPick     int `json:"game_3_opponent_pick"`
	Game3Stage       int `json:"game_3_stage"`
	Game3Winner      int `json:"game_3_winner"`
	Game3FinalMoveID int `json:"game_3_final_move_id"`
	Game3Duration    int `json:"game_3_duration"`

	FinalMoveID int    `json:"final_move_id"`
	Notes       string `json:"notes"`
}

func newInsertPayload(rec model.MatchRecord) insertPayload {
	matchDate := ""
	if !rec.MatchDate.IsZero() {
		matchDate = rec.MatchDate.Format(time.DateTime)
	}
	win := 0
	if rec.Win() {
		win = 1
	}
	dur := func(i int) int {
		if rec.Games[i].Duration != model.Unknown {
			return rec.Games[i].Duration
		}
		if i < len(rec.Durations) {
			return rec.Durations[i]
		}
		return model.Unknown
	}
	return insertPayload{
		MatchDate:        matchDate,
		EloRankNew:       rec.EloRankNew,
		EloRankOld:       rec.EloRankOld,
		EloChange:        rec.EloChange,
		MatchWin:         win,
		RankedGameNumber: rec.RankedGameNumber,
		TotalWins:        rec.TotalWins,
		WinStreakValue:   rec.WinStreakValue,
		OpponentElo:      rec.OpponentElo,
		OpponentEstElo:   rec.OpponentEstimatedElo,
		OpponentName:     rec.OpponentName,

		Game1CharPick: rec.Games[0].CharPick, Game1OppPick: rec.Games[0].OpponentPick,
		Game1Stage: rec.Games[0].Stage, Game1Winner: rec.Games[0].Winner,
		Game1FinalMoveID: rec.Games[0].FinalMoveID, Game1Duration: dur(0),

		Game2CharPick: rec.Games[1].CharPick, Game2OppPick: rec.Games[1].OpponentPick,
		Game2Stage: rec.Games[1].Stage, Game2Winner: rec.Games[1].Winner,
		Game2FinalMoveID: rec.Games[1].FinalMoveID, Game2Duration: dur(1),

		Game3CharPick: rec.Games[2].CharPick, Game3OppPick: rec.Games[2].OpponentPick,
		Game3Stage: rec.Games[2].Stage, Game3Winner: rec.Games[2].Winner,
		Game3FinalMoveID: rec.Games[2].FinalMoveID, Game3Duration: dur(2),

		FinalMoveID: rec.FinalMoveID,
		Notes:       rec.Notes,
	}
}
