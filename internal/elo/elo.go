// Package elo estimates an unseen opponent's rating from the rating delta
// the game reports after a ranked match. The game never exposes the
// opponent's number directly, but the delta is an Elo update, so inverting
// the expected-score formula recovers it.
package elo

import (
	"fmt"
	"math"

	"github.com/sillypears/rivals2-log-parser/internal/model"
)

// Outcome of a match from the local player's perspective.
type Outcome int

const (
	Loss Outcome = 0
	Win  Outcome = 1
)

// K-factor regimes used by the game's ranked ladder. Only the established
// and post-placement values feed the estimator; the placement constants are
// retained because they document the ladder's tuning.
const (
	EstablishedK       = 24.0
	PostPlacementK     = 40.0
	PlacementK         = 120.0
	PlacementMedianK   = 80.0
	PlacementEdgeK     = 40.0
	PlacementMedianElo = 900
	PlacementEdgeDiff  = 450
)

// winStreakBonus maps consecutive-win count to the K multiplier the ladder
// applies on top of the base K. Tuned values observed from the game, not a
// formula; do not "simplify".
var winStreakBonus = [11]float64{
	0:  0.00,
	1:  0.35,
	2:  0.35,
	3:  0.35,
	4:  0.45,
	5:  0.45,
	6:  0.50,
	7:  0.50,
	8:  0.50,
	9:  0.75,
	10: 1.00,
}

const epsilon = 1e-6

// EstimateOpponentRating inverts the Elo expected-score formula to guess the
// opponent's rating. myRating is the pre-match rating, ratingChange the
// signed delta the match applied. opponentHint is the observed opponent
// rating if known; model.OpponentUnranked switches to the post-placement K.
// winStreak is clamped to 10.
//
// An outcome that disagrees with the delta's sign is a contract violation by
// the caller (or log corruption) and returns an error.
func EstimateOpponentRating(myRating, ratingChange int, outcome Outcome, opponentHint, winStreak int, k float64) (int, error) {
	if (outcome == Win && ratingChange < 0) || (outcome == Loss && ratingChange > 0) {
		return 0, fmt.Errorf("elo: outcome %d disagrees with rating change %d", outcome, ratingChange)
	}
	if winStreak > 10 {
		winStreak = 10
	}
	if winStreak < 0 {
		winStreak = 0
	}
	if opponentHint == model.OpponentUnranked {
		k = PostPlacementK
	}
	k *= 1 + winStreakBonus[winStreak]

	expected := float64(outcome) - float64(ratingChange)/k
	expected = math.Max(epsilon, math.Min(1-epsilon, expected))

	oddsRatio := (1 - expected) / expected
	return int(math.Floor(float64(myRating) + 400*math.Log10(oddsRatio))), nil
}

// Estimate is EstimateOpponentRating with the established-ladder defaults:
// no streak bonus and the base K of 24.
func Estimate(myRating, ratingChange int, outcome Outcome, opponentHint int) (int, error) {
	return EstimateOpponentRating(myRating, ratingChange, outcome, opponentHint, 0, EstablishedK)
}
