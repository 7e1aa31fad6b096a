package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/trouze/movienight/internal/dependencies/clock"
	"github.com/trouze/movienight/internal/dependencies/random"
	"github.com/trouze/movienight/internal/metadata"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/storage"
)

// idAlphabet is the character set for generated movie IDs
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ErrEmptyTitle indicates a movie was submitted without a title
var ErrEmptyTitle = errors.New("movie title must not be empty")

// PermissionChecker reports whether a member holds a permission
type PermissionChecker interface {
	Has(ctx context.Context, memberID model.MemberID, perm model.Permission) bool
}

// AddMovieInput is the caller-supplied portion of a new movie record
type AddMovieInput struct {
	Title     string
	TMDBID    int64
	PickedBy  model.MemberID
	WatchedAt time.Time
}

// Service manages the watched-movie catalog. Mutations require the
// manage-movies permission and reject with ErrPermissionDenied.
type Service struct {
	storage     storage.Storage
	finder      metadata.Finder
	permissions PermissionChecker
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
}

// New creates a new catalog Service
func New(
	storage storage.Storage,
	finder metadata.Finder,
	permissions PermissionChecker,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:     storage,
		finder:      finder,
		permissions: permissions,
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "catalog")),
	}
}

// Add records a watched movie. When a TMDB ID is supplied the record is
// enriched from the metadata provider; enrichment failures are logged
// and the bare record kept.
func (s *Service) Add(ctx context.Context, caller model.MemberID, input AddMovieInput) (*model.Movie, error) {
	if !s.permissions.Has(ctx, caller, model.PermissionManageMovies) {
		return nil, model.ErrPermissionDenied
	}

	title := strings.TrimSpace(input.Title)
	if title == "" && input.TMDBID == 0 {
		return nil, ErrEmptyTitle
	}

	now := s.clock.Now()
	movie := &model.Movie{
		ID:        model.MovieID("mv_" + s.random.String(12, idAlphabet)),
		Title:     title,
		TMDBID:    input.TMDBID,
		PickedBy:  input.PickedBy,
		WatchedAt: input.WatchedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.TMDBID != 0 && s.finder != nil {
		if result, err := s.finder.Lookup(ctx, input.TMDBID); err != nil {
			s.logger.Warn("metadata enrichment failed",
				slog.Int64("tmdb_id", input.TMDBID),
				slog.Any("error", err))
		} else {
			if movie.Title == "" {
				movie.Title = result.Title
			}
			movie.PosterURL = result.PosterURL
			movie.Overview = result.Overview
			movie.ReleaseYear = result.ReleaseYear
		}
	}

	if movie.Title == "" {
		return nil, ErrEmptyTitle
	}

	if err := s.storage.SaveMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("saving movie: %w", err)
	}

	s.logger.Info("movie added",
		slog.String("movie_id", string(movie.ID)),
		slog.String("title", movie.Title))
	return movie, nil
}

// Get returns a movie by ID
func (s *Service) Get(ctx context.Context, id model.MovieID) (*model.Movie, error) {
	return s.storage.GetMovie(ctx, id)
}

// List returns all recorded movies
func (s *Service) List(ctx context.Context) ([]*model.Movie, error) {
	return s.storage.ListMovies(ctx)
}

// Remove deletes a movie from the catalog
func (s *Service) Remove(ctx context.Context, caller model.MemberID, id model.MovieID) error {
	if !s.permissions.Has(ctx, caller, model.PermissionManageMovies) {
		return model.ErrPermissionDenied
	}

	if _, err := s.storage.GetMovie(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteMovie(ctx, id); err != nil {
		return fmt.Errorf("deleting movie: %w", err)
	}

	s.logger.Info("movie removed", slog.String("movie_id", string(id)))
	return nil
}

// Search queries the metadata provider for candidate movies
func (s *Service) Search(ctx context.Context, query string) ([]metadata.Result, error) {
	if s.finder == nil {
		return []metadata.Result{}, nil
	}
	return s.finder.Search(ctx, query)
}
