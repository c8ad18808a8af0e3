package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dicepad/dicepad/internal/ws"
)

func newClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <code> <player-id> <achievement> <score>",
		Short: "Record a score for one player's achievement",
		Long: `Record a score for one player's achievement category.

Achievements: ones, twos, threes, fours, fives, sixes, pair, two-pairs,
three-of-kind, four-of-kind, small-straight, large-straight, full-house,
poker, chance.

A score of 0 strikes the category out (poker still earns its bonus).`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[3])
			if err != nil {
				return err
			}

			conn, err := client.DialWS()
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			payload := ws.AddScorePayload{
				GameID:          args[0],
				PlayerID:        args[1],
				AchievementType: args[2],
				Score:           score,
			}
			if err := client.Send(conn, ws.TypeAddScore, payload); err != nil {
				return err
			}

			game, err := client.ReceiveGame(conn)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(game)
			return nil
		},
	}
}
