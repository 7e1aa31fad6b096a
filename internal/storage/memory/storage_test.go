package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/trouze/movienight/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Cursor tests

func (s *StorageSuite) TestGetCursorDefaultsToZero() {
	cursor, err := s.storage.GetCursor(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, cursor)
}

func (s *StorageSuite) TestSetAndGetCursor() {
	s.Require().NoError(s.storage.SetCursor(s.ctx, 6))

	cursor, err := s.storage.GetCursor(s.ctx)
	s.Require().NoError(err)
	s.Equal(6, cursor)
}

func (s *StorageSuite) TestSetCursorLastWriteWins() {
	s.Require().NoError(s.storage.SetCursor(s.ctx, 3))
	s.Require().NoError(s.storage.SetCursor(s.ctx, 0))

	cursor, err := s.storage.GetCursor(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, cursor)
}

// Member tests

func (s *StorageSuite) TestSaveAndGetMember() {
	member := &model.Member{ID: "m_alice", DisplayName: "Alice"}
	s.Require().NoError(s.storage.SaveMember(s.ctx, member))

	retrieved, err := s.storage.GetMember(s.ctx, "m_alice")
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.DisplayName)
}

func (s *StorageSuite) TestGetMemberNotFound() {
	_, err := s.storage.GetMember(s.ctx, "m_nobody")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *StorageSuite) TestListMembersPreservesInsertionOrder() {
	for _, name := range []string{"alice", "bob", "carol"} {
		s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{
			ID:          model.MemberID("m_" + name),
			DisplayName: name,
		}))
	}

	members, err := s.storage.ListMembers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	s.Equal(model.MemberID("m_alice"), members[0].ID)
	s.Equal(model.MemberID("m_bob"), members[1].ID)
	s.Equal(model.MemberID("m_carol"), members[2].ID)
}

func (s *StorageSuite) TestResaveDoesNotDuplicateInList() {
	s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{ID: "m_alice", DisplayName: "Alice"}))
	s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{ID: "m_alice", DisplayName: "Alice B"}))

	members, err := s.storage.ListMembers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal("Alice B", members[0].DisplayName)
}

func (s *StorageSuite) TestDeleteMember() {
	s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{ID: "m_alice"}))
	s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{ID: "m_bob"}))

	s.Require().NoError(s.storage.DeleteMember(s.ctx, "m_alice"))

	members, err := s.storage.ListMembers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(model.MemberID("m_bob"), members[0].ID)
}

// Credentials tests

func (s *StorageSuite) TestSaveAndGetCredentials() {
	creds := &model.Credentials{MemberID: "m_alice", Username: "alice", PasswordHash: "hashed"}
	s.Require().NoError(s.storage.SaveCredentials(s.ctx, creds))

	retrieved, err := s.storage.GetCredentialsByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.MemberID("m_alice"), retrieved.MemberID)
}

func (s *StorageSuite) TestGetCredentialsUnknownUsername() {
	_, err := s.storage.GetCredentialsByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

// Movie tests

func (s *StorageSuite) TestSaveGetDeleteMovie() {
	s.Require().NoError(s.storage.SaveMovie(s.ctx, &model.Movie{ID: "mv_1", Title: "The Thing"}))

	movie, err := s.storage.GetMovie(s.ctx, "mv_1")
	s.Require().NoError(err)
	s.Equal("The Thing", movie.Title)

	s.Require().NoError(s.storage.DeleteMovie(s.ctx, "mv_1"))

	_, err = s.storage.GetMovie(s.ctx, "mv_1")
	s.ErrorIs(err, model.ErrMovieNotFound)
}

// Chat tests

func (s *StorageSuite) TestChatAppendAndRecent() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.AppendChatMessage(s.ctx, &model.ChatMessage{
			ID:   fmt.Sprintf("msg_%d", i),
			Text: fmt.Sprintf("message %d", i),
		}))
	}

	messages, err := s.storage.RecentChatMessages(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(messages, 3)
	s.Equal("message 2", messages[0].Text)
	s.Equal("message 4", messages[2].Text)
}

func (s *StorageSuite) TestChatRecentWithNonPositiveLimit() {
	s.Require().NoError(s.storage.AppendChatMessage(s.ctx, &model.ChatMessage{ID: "msg_0", Text: "hi"}))

	messages, err := s.storage.RecentChatMessages(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(messages)
}
