package memory

import (
	"context"
	"sync"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	cursor    int
	cursorSet bool

	members     map[model.MemberID]*model.Member
	memberOrder []model.MemberID // registry enumeration order

	credentials   map[model.MemberID]*model.Credentials
	usernameIndex map[string]model.MemberID

	movies map[model.MovieID]*model.Movie

	chat []*model.ChatMessage
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		members:       make(map[model.MemberID]*model.Member),
		credentials:   make(map[model.MemberID]*model.Credentials),
		usernameIndex: make(map[string]model.MemberID),
		movies:        make(map[model.MovieID]*model.Movie),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Cursor operations

func (s *Storage) GetCursor(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.cursorSet {
		return 0, nil
	}
	return s.cursor, nil
}

func (s *Storage) SetCursor(ctx context.Context, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = value
	s.cursorSet = true
	return nil
}

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[member.ID]; !ok {
		s.memberOrder = append(s.memberOrder, member.ID)
	}
	s.members[member.ID] = member
	return nil
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	return member, nil
}

func (s *Storage) ListMembers(ctx context.Context) ([]*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]*model.Member, 0, len(s.members))
	for _, id := range s.memberOrder {
		if member, ok := s.members[id]; ok {
			members = append(members, member)
		}
	}
	return members, nil
}

func (s *Storage) DeleteMember(ctx context.Context, id model.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
	for i, mid := range s.memberOrder {
		if mid == id {
			s.memberOrder = append(s.memberOrder[:i], s.memberOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[creds.MemberID] = creds
	s.usernameIndex[creds.Username] = creds.MemberID
	return nil
}

func (s *Storage) GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	memberID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	creds, ok := s.credentials[memberID]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	return creds, nil
}

// Movie operations

func (s *Storage) SaveMovie(ctx context.Context, movie *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies[movie.ID] = movie
	return nil
}

func (s *Storage) GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movie, ok := s.movies[id]
	if !ok {
		return nil, model.ErrMovieNotFound
	}
	return movie, nil
}

func (s *Storage) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]*model.Movie, 0, len(s.movies))
	for _, movie := range s.movies {
		movies = append(movies, movie)
	}
	return movies, nil
}

func (s *Storage) DeleteMovie(ctx context.Context, id model.MovieID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.movies, id)
	return nil
}

// Chat operations

func (s *Storage) AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, msg)
	return nil
}

func (s *Storage) RecentChatMessages(ctx context.Context, n int) ([]*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || len(s.chat) == 0 {
		return []*model.ChatMessage{}, nil
	}
	start := len(s.chat) - n
	if start < 0 {
		start = 0
	}
	messages := make([]*model.ChatMessage, len(s.chat)-start)
	copy(messages, s.chat[start:])
	return messages, nil
}
