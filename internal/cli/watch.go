package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/dicepad/dicepad/internal/ws"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <code>",
		Short: "Follow a game's score sheet in real time",
		Long: `Join a game over the websocket and print every snapshot the server
broadcasts as scores come in.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchGame(args[0])
		},
	}
}

func watchGame(code string) error {
	conn, err := client.DialWS()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if err := client.Send(conn, ws.TypeJoinGame, ws.JoinGamePayload{GameID: code}); err != nil {
		return err
	}

	// Close the connection on interrupt; the blocked read then returns
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	interrupted := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			close(interrupted)
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			_ = conn.Close()
		case <-done:
		}
	}()

	out := NewOutput(cfg.Output)

	for {
		game, err := client.ReceiveGame(conn)
		if err != nil {
			select {
			case <-interrupted:
				if cfg.Output != "json" {
					fmt.Println("\nDisconnected")
				}
				return nil
			default:
				return err
			}
		}

		if cfg.Output != "json" {
			fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
		}
		out.Print(game)
	}
}
