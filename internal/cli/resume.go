package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/forcadev/forca-online/internal/session"
)

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume an interrupted game",
		Long: `Check the locally persisted player and room ids and, if the room still
exists and has not finished, show its current state. A stale room id is
discarded and you start fresh at the lobby.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			logWriter := io.Discard
			if cfg.Verbose {
				logWriter = os.Stderr
			}
			logger := slog.New(slog.NewTextHandler(logWriter, nil))

			playerID, err := currentPlayerID()
			if err != nil {
				return err
			}

			manager := session.NewManager(local, &roomFetcher{client: client, playerID: playerID}, logger)
			if err := manager.Init(context.Background()); err != nil {
				return err
			}

			room := manager.Room()
			if room == nil {
				out.PrintMessage("Nothing to resume")
				return nil
			}

			state, err := client.GetState(room.ID, playerID)
			if err != nil {
				return err
			}
			out.Print(state)
			return nil
		},
	}
}
