package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Member management commands",
	}

	cmd.AddCommand(newMemberListCmd())
	cmd.AddCommand(newMemberRegisterCmd())
	cmd.AddCommand(newMemberLoginCmd())
	cmd.AddCommand(newMemberLogoutCmd())
	cmd.AddCommand(newMemberMeCmd())
	cmd.AddCommand(newMemberSetRoleCmd())

	return cmd
}

func newMemberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rotation participants in slot order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Member

			if err := client.Get("/api/v1/members", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMemberRegisterCmd() *cobra.Command {
	var name, user, pass, avatar string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new member account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username":     user,
				"password":     pass,
				"display_name": name,
				"avatar_url":   avatar,
			}
			var result AuthResult

			if err := client.Post("/api/v1/members/register", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newMemberLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/members/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newMemberLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/members/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newMemberMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current member info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Member

			if err := client.Get("/api/v1/members/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMemberSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <member-id> <role>",
		Short: "Change a member's role (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, role := args[0], args[1]

			req := map[string]string{"role": role}

			if err := client.Patch(fmt.Sprintf("/api/v1/members/%s/role", memberID), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Role of %s set to %s", memberID, role))
			return nil
		},
	}
}
