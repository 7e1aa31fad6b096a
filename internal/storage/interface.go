package storage

import (
	"context"

	"github.com/trouze/movienight/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Cursor operations. GetCursor returns 0 when no cursor has ever been
	// set; an error indicates the store itself was unreachable, and callers
	// on a render path should degrade to 0 rather than fail.
	// SetCursor is last-write-wins; concurrent writers race deliberately.
	GetCursor(ctx context.Context) (int, error)
	SetCursor(ctx context.Context, value int) error

	// Member operations
	SaveMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, id model.MemberID) (*model.Member, error)
	ListMembers(ctx context.Context) ([]*model.Member, error)
	DeleteMember(ctx context.Context, id model.MemberID) error

	// Credentials operations
	SaveCredentials(ctx context.Context, creds *model.Credentials) error
	GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error)

	// Movie operations
	SaveMovie(ctx context.Context, movie *model.Movie) error
	GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error)
	ListMovies(ctx context.Context) ([]*model.Movie, error)
	DeleteMovie(ctx context.Context, id model.MovieID) error

	// Chat operations. History is append-only and capped; RecentChatMessages
	// returns up to n messages, oldest first.
	AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error
	RecentChatMessages(ctx context.Context, n int) ([]*model.ChatMessage, error)
}
