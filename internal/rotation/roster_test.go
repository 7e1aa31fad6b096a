package rotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/storage/memory"
)

type RosterSuite struct {
	suite.Suite
	storage *memory.Storage
	ctx     context.Context
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterSuite))
}

func (s *RosterSuite) SetupTest() {
	s.storage = memory.New()
	s.ctx = context.Background()

	for _, id := range []model.MemberID{"alice", "bob", "carol", "dave"} {
		s.Require().NoError(s.storage.SaveMember(s.ctx, &model.Member{
			ID:          id,
			DisplayName: string(id),
		}))
	}
}

func (s *RosterSuite) TestNoAllowListUsesRegistryOrder() {
	roster := NewRoster(s.storage, nil)

	members, err := roster.Members(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 4)
	s.Equal(model.MemberID("alice"), members[0].ID)
	s.Equal(model.MemberID("bob"), members[1].ID)
	s.Equal(model.MemberID("carol"), members[2].ID)
	s.Equal(model.MemberID("dave"), members[3].ID)
}

func (s *RosterSuite) TestAllowListPinsOrder() {
	roster := NewRoster(s.storage, []model.MemberID{"dave", "alice", "carol"})

	members, err := roster.Members(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	s.Equal(model.MemberID("dave"), members[0].ID)
	s.Equal(model.MemberID("alice"), members[1].ID)
	s.Equal(model.MemberID("carol"), members[2].ID)
}

func (s *RosterSuite) TestAllowListExcludesUnlistedMembers() {
	roster := NewRoster(s.storage, []model.MemberID{"bob"})

	members, err := roster.Members(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(model.MemberID("bob"), members[0].ID)
}

func (s *RosterSuite) TestAllowListSkipsUnregisteredIDs() {
	roster := NewRoster(s.storage, []model.MemberID{"alice", "ghost", "bob"})

	members, err := roster.Members(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal(model.MemberID("alice"), members[0].ID)
	s.Equal(model.MemberID("bob"), members[1].ID)
}

func (s *RosterSuite) TestSlotsAssignedByPosition() {
	roster := NewRoster(s.storage, []model.MemberID{"carol", "bob"})

	members, err := roster.Members(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal(0, members[0].Slot)
	s.Equal(1, members[1].Slot)
}

func (s *RosterSuite) TestSize() {
	roster := NewRoster(s.storage, []model.MemberID{"alice", "bob"})

	n, err := roster.Size(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}
