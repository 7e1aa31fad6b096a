package rotation

import (
	"context"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/storage"
)

// Roster resolves the ordered list of rotation participants.
//
// When an allow-list is configured it is canonical: only listed members
// participate, ordered by their position in the list. This decouples
// display order from incidental registry insertion order and lets
// registry members sit out the rotation. With no allow-list, every
// registered member participates in registry enumeration order.
type Roster struct {
	store     storage.Storage
	allowList []model.MemberID
}

// NewRoster creates a Roster backed by the member registry
func NewRoster(store storage.Storage, allowList []model.MemberID) *Roster {
	return &Roster{
		store:     store,
		allowList: allowList,
	}
}

// Members returns the participants in canonical slot order, with each
// member's Slot set to their position
func (r *Roster) Members(ctx context.Context) ([]*model.Member, error) {
	registered, err := r.store.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	var ordered []*model.Member
	if len(r.allowList) == 0 {
		ordered = registered
	} else {
		byID := make(map[model.MemberID]*model.Member, len(registered))
		for _, m := range registered {
			byID[m.ID] = m
		}
		ordered = make([]*model.Member, 0, len(r.allowList))
		for _, id := range r.allowList {
			if m, ok := byID[id]; ok {
				ordered = append(ordered, m)
			}
		}
	}

	for i, m := range ordered {
		m.Slot = i
	}
	return ordered, nil
}

// Size returns the number of participants
func (r *Roster) Size(ctx context.Context) (int, error) {
	members, err := r.Members(ctx)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}
