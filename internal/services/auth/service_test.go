package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/trouze/movienight/internal/dependencies/mocks"
	"github.com/trouze/movienight/internal/dependencies/random"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/storage/memory"
	"github.com/trouze/movienight/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, random.New(), DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	session, err := s.service.Register(s.ctx, "alice", "password123", "Alice", "https://example.com/alice.png")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Member.DisplayName)
	s.Equal(model.RoleMember, session.Member.Role)
	s.NotEmpty(session.MemberID)
}

func (s *ServiceSuite) TestRegisterPersistsMemberAndCredentials() {
	session, _ := s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	member, err := s.storage.GetMember(s.ctx, session.MemberID)
	s.Require().NoError(err)
	s.Equal("Alice", member.DisplayName)

	creds, err := s.storage.GetCredentialsByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(session.MemberID, creds.MemberID)
	s.NotEmpty(creds.PasswordHash)
	s.NotEqual("password123", creds.PasswordHash) // Should be hashed
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	_, err := s.service.Register(s.ctx, "alice", "different", "Alice2", "")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	session, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Member.DisplayName)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	_, err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// ValidateSession tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	session, _ := s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.MemberID, validated.MemberID)
}

func (s *ServiceSuite) TestValidateSessionFailsForUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsAfterExpiry() {
	session, _ := s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, _ := s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// Permission tests

func (s *ServiceSuite) TestHasDeniesRegularMember() {
	session, _ := s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	s.False(s.service.Has(s.ctx, session.MemberID, model.PermissionManageMovies))
}

func (s *ServiceSuite) TestHasGrantsAdmin() {
	session, _ := s.service.Register(s.ctx, "alice", "password123", "Alice", "")
	s.Require().NoError(s.service.SetRole(s.ctx, session.MemberID, model.RoleAdmin))

	s.True(s.service.Has(s.ctx, session.MemberID, model.PermissionManageMovies))
}

func (s *ServiceSuite) TestHasDeniesUnknownMember() {
	s.False(s.service.Has(s.ctx, "m_nobody", model.PermissionManageMovies))
}

func (s *ServiceSuite) TestSetRoleUnknownMember() {
	err := s.service.SetRole(s.ctx, "m_nobody", model.RoleAdmin)
	s.ErrorIs(err, model.ErrMemberNotFound)
}

// Session cleanup tests

func (s *ServiceSuite) TestCleanExpiredSessions() {
	expired, _ := s.service.Register(s.ctx, "alice", "password123", "Alice", "")

	s.clock.Advance(25 * time.Hour)
	fresh, _ := s.service.Login(s.ctx, "alice", "password123")

	s.service.CleanExpiredSessions()

	_, err := s.service.ValidateSession(expired.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
