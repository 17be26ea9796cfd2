package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sillypears/rivals2-log-parser/internal/backend"
)

var tierNames bool

var tierCmd = &cobra.Command{
	Use:   "tier",
	Short: "Show the current ranked tier from the backend",
	Args:  cobra.NoArgs,
	RunE:  runTier,
}

func init() {
	tierCmd.Flags().BoolVar(&tierNames, "names", false, "also list known opponent names")
}

func runTier(cmd *cobra.Command, args []string) error {
	client := backend.New(cfg.Backend.Host, cfg.Backend.Port, cfg.Backend.Timeout)

	tier, err := client.CurrentTier(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch current tier: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)  elo %d  game #%d  wins %d  streak %d\n",
		tier.Tier, tier.TierShort, tier.CurrentElo, tier.LastGameNumber, tier.TotalWins, tier.WinStreakValue)

	if tierNames {
		names, err := client.OpponentNames(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch opponent names: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Known opponents (%d): %s\n", len(names), strings.Join(names, ", "))
	}
	return nil
}
