package cli

import (
	"github.com/spf13/cobra"

	"github.com/dicepad/dicepad/internal/ws"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <player-name>...",
		Short: "Create a game for the named players, in turn order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := client.DialWS()
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			if err := client.Send(conn, ws.TypeCreateGame, ws.CreateGamePayload{PlayerNames: args}); err != nil {
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
