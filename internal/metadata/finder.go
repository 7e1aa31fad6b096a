package metadata

import (
	"context"
	"errors"
)

// ErrNotFound indicates the provider has no movie for the given ID
var ErrNotFound = errors.New("movie not found in metadata provider")

// Result is a single movie returned by the metadata provider
type Result struct {
	TMDBID      int64
	Title       string
	Overview    string
	PosterURL   string
	ReleaseYear int
}

// Finder retrieves movie metadata from an external provider
type Finder interface {
	// Search returns movies matching a free-text query, best match first
	Search(ctx context.Context, query string) ([]Result, error)

	// Lookup returns the movie with the given provider ID
	Lookup(ctx context.Context, tmdbID int64) (*Result, error)
}
