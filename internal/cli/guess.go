package cli

import (
	"github.com/spf13/cobra"
)

func newGuessCmd() *cobra.Command {
	var showState bool

	cmd := &cobra.Command{
		Use:   "guess <letter>",
		Short: "Guess a letter in your active room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := currentPlayerID()
			if err != nil {
				return err
			}
			roomID, err := activeRoomID()
			if err != nil {
				return err
			}

			result, err := client.Guess(roomID, playerID, args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)

			if showState && cfg.Output != "json" {
				state, err := client.GetState(roomID, playerID)
				if err != nil {
					return err
				}
				out.Print(state)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showState, "state", true, "Show the room state after the guess")

	return cmd
}
