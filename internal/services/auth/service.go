package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trouze/movienight/internal/dependencies/clock"
	"github.com/trouze/movienight/internal/dependencies/random"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// idAlphabet is the character set for generated IDs and tokens
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Session represents an authenticated session
type Session struct {
	Token     string
	MemberID  model.MemberID
	Member    model.Member
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service handles registration, login, sessions, and permission checks
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		logger:          logger.With(slog.String("component", "auth")),
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a member account and an initial session
func (s *Service) Register(ctx context.Context, username, password, displayName, avatarURL string) (*Session, error) {
	_, err := s.storage.GetCredentialsByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrMemberNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	memberID := model.MemberID("m_" + s.random.String(16, idAlphabet))
	now := s.clock.Now()

	member := &model.Member{
		ID:          memberID,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		Role:        model.RoleMember,
		CreatedAt:   now,
	}

	creds := &model.Credentials{
		MemberID:     memberID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	if err := s.storage.SaveCredentials(ctx, creds); err != nil {
		return nil, err
	}

	s.logger.Info("member registered", slog.String("member_id", string(memberID)))
	return s.createSession(member)
}

// Login authenticates a member and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	creds, err := s.storage.GetCredentialsByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	member, err := s.storage.GetMember(ctx, creds.MemberID)
	if err != nil {
		return nil, err
	}

	return s.createSession(member)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetMember returns the member for a session token
func (s *Service) GetMember(token string) (*model.Member, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.Member, nil
}

// Has reports whether a member holds a permission. Fails closed: an
// unknown member or a storage error means no.
func (s *Service) Has(ctx context.Context, memberID model.MemberID, perm model.Permission) bool {
	member, err := s.storage.GetMember(ctx, memberID)
	if err != nil {
		if !errors.Is(err, model.ErrMemberNotFound) {
			s.logger.Warn("permission check failed, denying",
				slog.String("member_id", string(memberID)),
				slog.Any("error", err))
		}
		return false
	}
	return member.Role.Grants(perm)
}

// SetRole updates a member's role. Callers gate this behind their own
// authorization check.
func (s *Service) SetRole(ctx context.Context, memberID model.MemberID, role model.Role) error {
	member, err := s.storage.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	member.Role = role
	if err := s.storage.SaveMember(ctx, member); err != nil {
		return err
	}
	s.logger.Info("member role updated",
		slog.String("member_id", string(memberID)),
		slog.String("role", string(role)))
	return nil
}

// createSession creates a new session for a member
func (s *Service) createSession(member *model.Member) (*Session, error) {
	token := "sess_" + s.random.String(32, idAlphabet)
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		MemberID:  member.ID,
		Member:    *member,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
