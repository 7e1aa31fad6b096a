package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/rotation"
)

func newRotationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rotation",
		Short: "Turn rotation commands",
	}

	cmd.AddCommand(newRotationShowCmd())
	cmd.AddCommand(newRotationSetCmd())
	cmd.AddCommand(newRotationPartyCmd())
	cmd.AddCommand(newRotationWatchCmd())

	return cmd
}

func newRotationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current rotation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Rotation

			if err := client.Get("/api/v1/rotation", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRotationSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <cursor>",
		Short: "Advance the rotation to the given slot (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid cursor: %w", err)
			}

			req := map[string]int{"cursor": cursor}
			if err := client.Put("/api/v1/rotation/cursor", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Cursor set to %d", cursor))
			return nil
		},
	}
}

func newRotationPartyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "party",
		Short: "Trigger a party broadcast for everyone watching",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/rotation/party", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Party!")
			return nil
		},
	}
}

func newRotationWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the rotation live",
		Long: `Bootstrap the rotation from the server, then follow cursor events
over SSE and reprint the order whenever the turn changes.

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRotation()
		},
	}
}

func watchRotation() error {
	// Bootstrap from the server; missed events are never replayed, so
	// the snapshot is the only valid starting point
	var snapshot Rotation
	if err := client.Get("/api/v1/rotation", &snapshot); err != nil {
		return err
	}

	view := rotation.NewView(slotOrdered(snapshot.Order), snapshot.Cursor, watchLogger())
	defer view.Close()

	printOrder := func() {
		fmt.Printf("Cursor: %d\n", view.Cursor())
		for i, m := range view.Order() {
			marker := "  "
			if i == 0 {
				marker = "* "
			}
			fmt.Printf("%s%s (slot %d)\n", marker, m.DisplayName, m.Slot)
		}
	}

	printOrder()
	view.OnTurnChange(func(cursor int) {
		fmt.Println("\nTurn changed:")
		printOrder()
	})

	return streamSSE(model.ChannelMovieNight, func(event, data string) {
		switch event {
		case model.EventSetCursor:
			view.Apply(json.RawMessage(data))
		case model.EventTriggerParty:
			fmt.Printf("\nParty triggered by %s!\n", data)
		}
	})
}

// slotOrdered rebuilds the slot-ordered member list from a rotated
// response; slots identify each member's fixed position
func slotOrdered(order []Member) []*model.Member {
	members := make([]*model.Member, 0, len(order))
	for _, m := range order {
		members = append(members, &model.Member{
			ID:          model.MemberID(m.ID),
			DisplayName: m.DisplayName,
			AvatarURL:   m.AvatarURL,
			Role:        model.Role(m.Role),
			Slot:        m.Slot,
		})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Slot < members[j].Slot
	})
	return members
}

func watchLogger() *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
