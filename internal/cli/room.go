package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forcadev/forca-online/internal/model"
	"github.com/forcadev/forca-online/internal/session"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room lifecycle commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomShowCmd())
	cmd.AddCommand(newRoomStateCmd())
	cmd.AddCommand(newRoomWordCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomCategoriesCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var mode, category string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a room and wait for an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := currentPlayerID()
			if err != nil {
				return err
			}

			room, err := client.CreateRoom(playerID, mode, category)
			if err != nil {
				return err
			}

			if err := local.Set(session.ActiveRoomKey, string(room.ID)); err != nil {
				return fmt.Errorf("failed to save room id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(room)
			if cfg.Output != "json" {
				out.PrintMessage(fmt.Sprintf("\nShare code %s with your opponent.", room.Code))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "competitive", "Game mode: competitive, cooperative, challenger")
	cmd.Flags().StringVar(&category, "category", "", "Word category (random if omitted; unused in challenger mode)")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room by its shareable code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := currentPlayerID()
			if err != nil {
				return err
			}

			room, err := client.JoinRoom(args[0], playerID)
			if err != nil {
				return err
			}

			if err := local.Set(session.ActiveRoomKey, string(room.ID)); err != nil {
				return fmt.Errorf("failed to save room id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(room)
			return nil
		},
	}

	return cmd
}

func newRoomShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show a room by code without joining it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := client.GetRoomByCode(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(room)
			return nil
		},
	}
}

func newRoomStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current state of your active room",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := currentPlayerID()
			if err != nil {
				return err
			}
			roomID, err := activeRoomID()
			if err != nil {
				return err
			}

			state, err := client.GetState(roomID, playerID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(state)
			return nil
		},
	}
}

func newRoomWordCmd() *cobra.Command {
	var word, category string

	cmd := &cobra.Command{
		Use:   "word",
		Short: "Author the word your opponent will guess (challenger mode)",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := currentPlayerID()
			if err != nil {
				return err
			}
			roomID, err := activeRoomID()
			if err != nil {
				return err
			}

			room, err := client.SetWord(roomID, playerID, word, category)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(room)
			return nil
		},
	}

	cmd.Flags().StringVar(&word, "word", "", "Word for your opponent to guess (required)")
	cmd.Flags().StringVar(&category, "category", "", "Hint category shown to your opponent")
	_ = cmd.MarkFlagRequired("word")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Forget the active room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := local.Remove(session.ActiveRoomKey); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left room")
			return nil
		},
	}
}

func newRoomCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List available word categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Categories()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// activeRoomID reads the locally persisted active room id
func activeRoomID() (model.RoomID, error) {
	id, ok := local.Get(session.ActiveRoomKey)
	if !ok {
		return "", fmt.Errorf("no active room; create or join one first")
	}
	return model.RoomID(id), nil
}
