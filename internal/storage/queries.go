package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sillypears/rivals2-log-parser/internal/model"
)

// MatchExists reports whether a match with the given counter is already
// recorded. When the date falls inside a known season, the check is scoped
// to that season's window — counters restart across seasons, so the same
// number can legitimately appear once per season. A zero date checks the
// counter globally.
func (db *DB) MatchExists(ctx context.Context, gameNumber int, date time.Time) (bool, error) {
	var (
		count int
		err   error
	)
	if season, ok, serr := db.seasonFor(ctx, date); serr != nil {
		return false, serr
	} else if ok {
		err = db.conn.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM matches WHERE ranked_game_number = ? AND match_date >= ? AND match_date <= ?",
			gameNumber, season.StartDate.Format(dateLayout), season.EndDate.Format(dateLayout),
		).Scan(&count)
	} else {
		err = db.conn.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM matches WHERE ranked_game_number = ?", gameNumber,
		).Scan(&count)
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores one match record.
func (db *DB) InsertMatch(ctx context.Context, rec model.MatchRecord) error {
	matchDate := ""
	if !rec.MatchDate.IsZero() {
		matchDate = rec.MatchDate.Format(dateLayout)
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO matches(
			match_date, elo_rank_new, elo_rank_old, elo_change,
			ranked_game_number, total_wins, win_streak_value,
			opponent_elo, opponent_estimated_elo, opponent_name,
			game_1_char_pick, game_1_opponent_pick, game_1_stage, game_1_winner, game_1_final_move_id, game_1_duration,
			game_2_char_pick, game_2_opponent_pick, game_2_stage, game_2_winner, game_2_final_move_id, game_2_duration,
			game_3_char_pick, game_3_opponent_pick, game_3_stage, game_3_winner, game_3_final_move_id, game_3_duration,
			final_move_id, notes
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		matchDate, rec.EloRankNew, rec.EloRankOld, rec.EloChange,
		rec.RankedGameNumber, rec.TotalWins, rec.WinStreakValue,
		rec.OpponentElo, rec.OpponentEstimatedElo, rec.OpponentName,
		rec.Games[0].CharPick, rec.Games[0].OpponentPick, rec.Games[0].Stage, rec.Games[0].Winner, rec.Games[0].FinalMoveID, gameDuration(rec, 0),
		rec.Games[1].CharPick, rec.Games[1].OpponentPick, rec.Games[1].Stage, rec.Games[1].Winner, rec.Games[1].FinalMoveID, gameDuration(rec, 1),
		rec.Games[2].CharPick, rec.Games[2].OpponentPick, rec.Games[2].Stage, rec.Games[2].Winner, rec.Games[2].FinalMoveID, gameDuration(rec, 2),
		rec.FinalMoveID, rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert match %d: %w", rec.RankedGameNumber, err)
	}
	return nil
}

// gameDuration picks the stored per-game duration: enrichment wins, then the
// correlated value for that game index.
func gameDuration(rec model.MatchRecord, i int) int {
	if rec.Games[i].Duration != model.Unknown {
		return rec.Games[i].Duration
	}
	if i < len(rec.Durations) {
		return rec.Durations[i]
	}
	return model.Unknown
}

// ListMatches returns stored matches, most recent first.
func (db *DB) ListMatches(ctx context.Context, limit int) ([]model.MatchRecord, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT match_date, elo_rank_new, elo_rank_old, elo_change,
			ranked_game_number, total_wins, win_streak_value,
			opponent_elo, opponent_estimated_elo, opponent_name
		FROM matches ORDER BY ranked_game_number DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		rec := model.NewMatchRecord()
		var matchDate string
		err := rows.Scan(&matchDate, &rec.EloRankNew, &rec.EloRankOld, &rec.EloChange,
			&rec.RankedGameNumber, &rec.TotalWins, &rec.WinStreakValue,
			&rec.OpponentElo, &rec.OpponentEstimatedElo, &rec.OpponentName)
		if err != nil {
			return nil, err
		}
		if matchDate != "" {
			if t, perr := time.Parse(dateLayout, matchDate); perr == nil {
				rec.MatchDate = t
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Seasons returns all known seasons in window order.
func (db *DB) Seasons(ctx context.Context) ([]model.Season, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, start_date, end_date, short_name, display_name FROM seasons ORDER BY start_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Season
	for rows.Next() {
		var (
			s          model.Season
			start, end string
		)
		if err := rows.Scan(&s.ID, &start, &end, &s.ShortName, &s.DisplayName); err != nil {
			return nil, err
		}
		if s.StartDate, err = time.Parse(dateLayout, start); err != nil {
			return nil, fmt.Errorf("season %d start: %w", s.ID, err)
		}
		if s.EndDate, err = time.Parse(dateLayout, end); err != nil {
			return nil, fmt.Errorf("season %d end: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// seasonFor returns the season containing t, if any.
func (db *DB) seasonFor(ctx context.Context, t time.Time) (model.Season, bool, error) {
	if t.IsZero() {
		return model.Season{}, false, nil
	}
	seasons, err := db.Seasons(ctx)
	if err != nil {
		return model.Season{}, false, err
	}
	for _, s := range seasons {
		if s.Contains(t) {
			return s, true, nil
		}
	}
	return model.Season{}, false, nil
}

// CurrentSeason returns the season containing t. ok is false when t falls
// outside every known window.
func (db *DB) CurrentSeason(ctx context.Context, t time.Time) (model.Season, bool, error) {
	return db.seasonFor(ctx, t)
}

// LastGameNumber returns the highest recorded counter, or 0 when the store
// is empty.
func (db *DB) LastGameNumber(ctx context.Context) (int, error) {
	var n sql.NullInt64
	err := db.conn.QueryRowContext(ctx, "SELECT MAX(ranked_game_number) FROM matches").Scan(&n)
	if err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}
