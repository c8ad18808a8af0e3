package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Inspect games",
	}

	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameQRCmd())

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Fetch a game's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var game Game

			if err := client.Get("/api/v1/games/"+args[0], &game); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(game)
			return nil
		},
	}
}

func newGameQRCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "qr <code>",
		Short: "Download a game's QR share code as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var png []byte
			if err := client.GetRaw("/api/v1/games/"+args[0]+"/qr", &png); err != nil {
				return err
			}

			if outFile == "" {
				outFile = args[0] + ".png"
			}
			if err := os.WriteFile(outFile, png, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}

			fmt.Printf("Wrote %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "Output file (default: <code>.png)")

	return cmd
}
