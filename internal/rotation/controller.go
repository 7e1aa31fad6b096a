package rotation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/pubsub"
	"github.com/trouze/movienight/internal/storage"
)

// PermissionChecker reports whether a member holds a permission.
// Implementations must fail closed: any doubt means false.
type PermissionChecker interface {
	Has(ctx context.Context, memberID model.MemberID, perm model.Permission) bool
}

// Controller is the sole authorized mutator of the rotation cursor
type Controller struct {
	store       storage.Storage
	publisher   pubsub.Publisher
	permissions PermissionChecker
	roster      *Roster
	logger      *slog.Logger
}

// NewController creates a new rotation Controller
func NewController(
	store storage.Storage,
	publisher pubsub.Publisher,
	permissions PermissionChecker,
	roster *Roster,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:       store,
		publisher:   publisher,
		permissions: permissions,
		roster:      roster,
		logger:      logger.With(slog.String("component", "rotation")),
	}
}

// AdvanceTo moves the cursor to newCursor on behalf of caller.
//
// Callers without the manage-movies permission are silently rejected:
// no broadcast, no write, nil error. The broadcast goes out before the
// write lands; a persist failure after a successful broadcast leaves
// connected clients ahead of the store until the next advance, which is
// accepted for this domain.
func (c *Controller) AdvanceTo(ctx context.Context, caller model.MemberID, newCursor int) error {
	if !c.permissions.Has(ctx, caller, model.PermissionManageMovies) {
		c.logger.Info("rotation advance rejected",
			slog.String("member_id", string(caller)),
			slog.Int("cursor", newCursor))
		return nil
	}

	n, err := c.roster.Size(ctx)
	if err != nil {
		return fmt.Errorf("resolving roster: %w", err)
	}
	if n == 0 {
		return model.ErrEmptyRoster
	}
	if newCursor < 0 || newCursor >= n {
		return fmt.Errorf("cursor %d with %d participants: %w", newCursor, n, model.ErrCursorOutOfRange)
	}

	if err := c.publisher.Publish(ctx, model.ChannelMovieNight, model.EventSetCursor, newCursor); err != nil {
		// Best-effort; connected clients miss this one and catch up on
		// the next event or reload
		c.logger.Warn("rotation broadcast failed",
			slog.Int("cursor", newCursor),
			slog.Any("error", err))
	}

	if err := c.store.SetCursor(ctx, newCursor); err != nil {
		c.logger.Error("cursor persist failed after broadcast",
			slog.Int("cursor", newCursor),
			slog.Any("error", err))
		return fmt.Errorf("persisting cursor: %w", err)
	}

	c.logger.Info("rotation advanced",
		slog.String("member_id", string(caller)),
		slog.Int("cursor", newCursor))
	return nil
}

// Current returns the persisted cursor clamped into the roster's valid
// range. Store errors degrade to 0 so render paths never fail.
func (c *Controller) Current(ctx context.Context) int {
	cursor, err := c.store.GetCursor(ctx)
	if err != nil {
		c.logger.Warn("cursor read failed, defaulting to 0", slog.Any("error", err))
		return 0
	}

	n, err := c.roster.Size(ctx)
	if err != nil {
		c.logger.Warn("roster read failed, returning unclamped cursor", slog.Any("error", err))
		if cursor < 0 {
			return 0
		}
		return cursor
	}
	return ClampCursor(cursor, n)
}

// Snapshot returns the participants in slot order along with the
// current cursor, for bootstrapping a view
func (c *Controller) Snapshot(ctx context.Context) ([]*model.Member, int, error) {
	members, err := c.roster.Members(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("resolving roster: %w", err)
	}
	return members, c.Current(ctx), nil
}

// TriggerParty broadcasts a celebratory event naming the triggering
// member. Nothing is persisted and any signed-in member may call it.
func (c *Controller) TriggerParty(ctx context.Context, caller model.MemberID) error {
	if err := c.publisher.Publish(ctx, model.ChannelMovieNight, model.EventTriggerParty, string(caller)); err != nil {
		return fmt.Errorf("broadcasting party event: %w", err)
	}
	c.logger.Info("party triggered", slog.String("member_id", string(caller)))
	return nil
}
