package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newMovieCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movie",
		Short: "Movie catalog commands",
	}

	cmd.AddCommand(newMovieAddCmd())
	cmd.AddCommand(newMovieListCmd())
	cmd.AddCommand(newMovieGetCmd())
	cmd.AddCommand(newMovieRemoveCmd())
	cmd.AddCommand(newMovieSearchCmd())

	return cmd
}

func newMovieAddCmd() *cobra.Command {
	var title, pickedBy, watchedAt string
	var tmdbID int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a movie to the catalog (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && tmdbID == 0 {
				return fmt.Errorf("--title or --tmdb is required")
			}

			req := map[string]any{
				"title":   title,
				"tmdb_id": tmdbID,
			}
			if pickedBy != "" {
				req["picked_by"] = pickedBy
			}
			if watchedAt != "" {
				req["watched_at"] = watchedAt
			}

			var result Movie
			if err := client.Post("/api/v1/movies", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Movie title")
	cmd.Flags().Int64Var(&tmdbID, "tmdb", 0, "TMDB id for metadata enrichment")
	cmd.Flags().StringVar(&pickedBy, "picked-by", "", "Member id of the picker")
	cmd.Flags().StringVar(&watchedAt, "watched-at", "", "Watch timestamp (RFC3339)")

	return cmd
}

func newMovieListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the movie catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MovieList

			if err := client.Get("/api/v1/movies", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMovieGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <movie-id>",
		Short: "Show a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Movie

			if err := client.Get(fmt.Sprintf("/api/v1/movies/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMovieRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <movie-id>",
		Short: "Remove a movie from the catalog (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/movies/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Movie removed")
			return nil
		},
	}
}

func newMovieSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search movie metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.QueryEscape(strings.Join(args, " "))

			var result SearchResults
			if err := client.Get("/api/v1/movies/search?q="+query, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
