package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sillypears/rivals2-log-parser/internal/elo"
	"github.com/sillypears/rivals2-log-parser/internal/model"
)

var (
	estElo    int
	estChange int
	estOppElo int
	estStreak int
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate an opponent's elo from a single rating change",
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().IntVar(&estElo, "elo", 0, "your rating before the match")
	estimateCmd.Flags().IntVar(&estChange, "change", 0, "rating change the match produced")
	estimateCmd.Flags().IntVar(&estOppElo, "opp-elo", model.OpponentUnranked, "opponent rating hint, -2 if unranked")
	estimateCmd.Flags().IntVar(&estStreak, "streak", 0, "win streak going into the match")
	estimateCmd.MarkFlagRequired("elo")
	estimateCmd.MarkFlagRequired("change")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	outcome := elo.Loss
	if estChange >= 0 {
		outcome = elo.Win
	}

	estimate, err := elo.EstimateOpponentRating(estElo, estChange, outcome, estOppElo, estStreak, elo.EstablishedK)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Estimated opponent elo: %d\n", estimate)
	return nil
}
