package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/trouze/movienight/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ChatHistoryCap = 5

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
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
	s.Require().NoError(s.storage.SetCursor(s.ctx, 5))

	cursor, err := s.storage.GetCursor(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, cursor)
}

func (s *StorageSuite) TestCursorStoredAsPlainNumber() {
	s.Require().NoError(s.storage.SetCursor(s.ctx, 4))

	raw, err := s.mini.Get("movienight:cursor")
	s.Require().NoError(err)
	s.Equal("4", raw)
}

// Member tests

func (s *StorageSuite) TestSaveAndGetMember() {
	member := &model.Member{
		ID:          "m_alice",
		DisplayName: "Alice",
		Role:        model.RoleMember,
		CreatedAt:   time.Now().UTC(),
	}

	s.Require().NoError(s.storage.SaveMember(s.ctx, member))

	retrieved, err := s.storage.GetMember(s.ctx, "m_alice")
	s.Require().NoError(err)
	s.Equal(member.ID, retrieved.ID)
	s.Equal(member.DisplayName, retrieved.DisplayName)
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
	member := &model.Member{ID: "m_alice", DisplayName: "Alice"}
	s.Require().NoError(s.storage.SaveMember(s.ctx, member))

	member.DisplayName = "Alice B"
	s.Require().NoError(s.storage.SaveMember(s.ctx, member))

	members, err := s.storage.ListMembers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal("Alice B", members[0].DisplayName)
}

func (s *StorageSuite) TestDeleteMember() {
	s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{ID: "m_alice"}))
	s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{ID: "m_bob"}))

	s.Require().NoError(s.storage.DeleteMember(s.ctx, "m_alice"))

	_, err := s.storage.GetMember(s.ctx, "m_alice")
	s.ErrorIs(err, model.ErrMemberNotFound)

	members, err := s.storage.ListMembers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(model.MemberID("m_bob"), members[0].ID)
}

// Credentials tests

func (s *StorageSuite) TestSaveAndGetCredentials() {
	creds := &model.Credentials{
		MemberID:     "m_alice",
		Username:     "alice",
		PasswordHash: "hashed",
	}

	s.Require().NoError(s.storage.SaveCredentials(s.ctx, creds))

	retrieved, err := s.storage.GetCredentialsByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.MemberID("m_alice"), retrieved.MemberID)
	s.Equal("hashed", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetCredentialsUnknownUsername() {
	_, err := s.storage.GetCredentialsByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

// Movie tests

func (s *StorageSuite) TestSaveAndGetMovie() {
	movie := &model.Movie{
		ID:     "mv_1",
		Title:  "The Thing",
		TMDBID: 1091,
	}

	s.Require().NoError(s.storage.SaveMovie(s.ctx, movie))

	retrieved, err := s.storage.GetMovie(s.ctx, "mv_1")
	s.Require().NoError(err)
	s.Equal("The Thing", retrieved.Title)
}

func (s *StorageSuite) TestGetMovieNotFound() {
	_, err := s.storage.GetMovie(s.ctx, "mv_nope")
	s.ErrorIs(err, model.ErrMovieNotFound)
}

func (s *StorageSuite) TestDeleteMovie() {
	s.Require().NoError(s.storage.SaveMovie(s.ctx, &model.Movie{ID: "mv_1", Title: "The Thing"}))

	s.Require().NoError(s.storage.DeleteMovie(s.ctx, "mv_1"))

	_, err := s.storage.GetMovie(s.ctx, "mv_1")
	s.ErrorIs(err, model.ErrMovieNotFound)

	movies, err := s.storage.ListMovies(s.ctx)
	s.Require().NoError(err)
	s.Empty(movies)
}

// Chat tests

func (s *StorageSuite) TestAppendAndReadChat() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.storage.AppendChatMessage(s.ctx, &model.ChatMessage{
			ID:   fmt.Sprintf("msg_%d", i),
			Text: fmt.Sprintf("message %d", i),
		}))
	}

	messages, err := s.storage.RecentChatMessages(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(messages, 3)
	s.Equal("message 0", messages[0].Text)
	s.Equal("message 2", messages[2].Text)
}

func (s *StorageSuite) TestRecentChatMessagesHonorsLimit() {
	for i := 0; i < 4; i++ {
		s.Require().NoError(s.storage.AppendChatMessage(s.ctx, &model.ChatMessage{
			ID:   fmt.Sprintf("msg_%d", i),
			Text: fmt.Sprintf("message %d", i),
		}))
	}

	messages, err := s.storage.RecentChatMessages(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(messages, 2)
	s.Equal("message 2", messages[0].Text)
	s.Equal("message 3", messages[1].Text)
}

func (s *StorageSuite) TestChatHistoryCapTrimsOldest() {
	// Cap is 5 in SetupTest
	for i := 0; i < 8; i++ {
		s.Require().NoError(s.storage.AppendChatMessage(s.ctx, &model.ChatMessage{
			ID:   fmt.Sprintf("msg_%d", i),
			Text: fmt.Sprintf("message %d", i),
		}))
	}

	messages, err := s.storage.RecentChatMessages(s.ctx, 100)
	s.Require().NoError(err)
	s.Require().Len(messages, 5)
	s.Equal("message 3", messages[0].Text)
	s.Equal("message 7", messages[4].Text)
}
