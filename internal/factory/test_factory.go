package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/trouze/movienight/internal/dependencies/mocks"
	"github.com/trouze/movienight/internal/dependencies/random"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/services/auth"
	"github.com/trouze/movienight/internal/storage/memory"
	"github.com/trouze/movienight/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock controls time in tests. Randomness stays real so IDs
	// and tokens never collide.
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with in-memory
// storage and a controllable clock
func NewTestApp(allowList ...model.MemberID) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, random.New(), auth.DefaultConfig(), allowList, nil, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// SeedMembers registers n members with usernames member-0..member-(n-1)
// and password "password", returning them in registration order
func (t *TestApp) SeedMembers(ctx context.Context, n int) ([]*auth.Session, error) {
	sessions := make([]*auth.Session, 0, n)
	for i := 0; i < n; i++ {
		session, err := t.AuthService.Register(ctx,
			fmt.Sprintf("member-%d", i), "password", fmt.Sprintf("P%d", i), "")
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// SeedAdmin registers an admin member with username "admin" and
// password "password"
func (t *TestApp) SeedAdmin(ctx context.Context) (*auth.Session, error) {
	session, err := t.AuthService.Register(ctx, "admin", "password", "Admin", "")
	if err != nil {
		return nil, err
	}
	if err := t.AuthService.SetRole(ctx, session.MemberID, model.RoleAdmin); err != nil {
		return nil, err
	}
	// The cached session still carries the old role; refresh it
	return t.AuthService.Login(ctx, "admin", "password")
}
