package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Group chat commands",
	}

	cmd.AddCommand(newChatHistoryCmd())
	cmd.AddCommand(newChatSayCmd())

	return cmd
}

func newChatHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent chat messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/chat/messages"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result ChatHistory
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of messages (default: server default)")

	return cmd
}

func newChatSayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <text>",
		Short: "Post a chat message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"text": strings.Join(args, " ")}

			var result ChatMessage
			if err := client.Post("/api/v1/chat/messages", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
