package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/session"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player identity commands",
	}

	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerShowCmd())

	return cmd
}

func newPlayerCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player identity for this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := client.CreatePlayer(name)
			if err != nil {
				return err
			}

			if err := local.Set(session.PlayerIDKey, string(player.ID)); err != nil {
				return fmt.Errorf("failed to save player id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(player)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show this device's player",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := currentPlayerID()
			if err != nil {
				return err
			}

			player, err := client.GetPlayer(playerID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(player)
			return nil
		},
	}
}

// currentPlayerID reads the locally persisted player identity
func currentPlayerID() (model.PlayerID, error) {
	id, ok := local.Get(session.PlayerIDKey)
	if !ok {
		return "", fmt.Errorf("no player identity; run 'forca player create --name <name>' first")
	}
	return model.PlayerID(id), nil
}
