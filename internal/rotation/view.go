package rotation

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/pubsub"
)

// View is one client's live picture of the rotation.
//
// It holds a fixed slot-ordered participant list and a local cursor,
// applies cursor events as they arrive, and exposes the rotated display
// order. The initial cursor must come from the store, not from event
// replay; events missed while detached are never redelivered.
type View struct {
	mu      sync.Mutex
	members []*model.Member
	cursor  int

	onTurnChange func(cursor int)

	sub       *pubsub.Subscription
	closeOnce sync.Once
	done      chan struct{}

	logger *slog.Logger
}

// NewView creates a View over a fixed participant list with the cursor
// read at load time. The initial cursor never fires the turn-change
// callback.
func NewView(members []*model.Member, initialCursor int, logger *slog.Logger) *View {
	return &View{
		members: members,
		cursor:  ClampCursor(initialCursor, len(members)),
		done:    make(chan struct{}),
		logger:  logger.With(slog.String("component", "rotation-view")),
	}
}

// OnTurnChange registers a callback fired when an applied update
// actually changes the cursor. Duplicate values do not fire it. Set
// before Attach.
func (v *View) OnTurnChange(fn func(cursor int)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onTurnChange = fn
}

// Attach consumes cursor events from the subscription until the
// subscription closes or the view is closed. The view owns exactly one
// subscription for its lifetime.
func (v *View) Attach(sub *pubsub.Subscription) {
	v.mu.Lock()
	v.sub = sub
	v.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-sub.C():
				if !ok {
					return
				}
				if event.Name != model.EventSetCursor {
					continue
				}
				v.Apply(event.Data)
			case <-v.done:
				return
			}
		}
	}()
}

// Apply validates and applies a cursor payload. The payload must be a
// bare JSON integer; anything else is dropped and the prior cursor
// kept.
func (v *View) Apply(data json.RawMessage) {
	var cursor int
	if err := json.Unmarshal(data, &cursor); err != nil {
		v.logger.Warn("dropping malformed cursor payload",
			slog.String("payload", string(data)))
		return
	}
	v.setCursor(cursor)
}

// SetLocal applies a cursor value optimistically, ahead of the
// authoritative broadcast. The broadcast arriving later with the same
// value is a no-op, so the turn-change callback fires at most once.
func (v *View) SetLocal(cursor int) {
	v.setCursor(cursor)
}

func (v *View) setCursor(cursor int) {
	v.mu.Lock()
	cursor = ClampCursor(cursor, len(v.members))
	if cursor == v.cursor {
		v.mu.Unlock()
		return
	}
	v.cursor = cursor
	fn := v.onTurnChange
	v.mu.Unlock()

	if fn != nil {
		fn(cursor)
	}
}

// Cursor returns the view's current local cursor
func (v *View) Cursor() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cursor
}

// Order returns the participants in display order: the member at the
// cursor's slot first, the rest following in slot order with wraparound
func (v *View) Order() []*model.Member {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Rotate(v.members, v.cursor)
}

// Close detaches the view from its subscription. Safe to call more
// than once.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		close(v.done)
		v.mu.Lock()
		sub := v.sub
		v.mu.Unlock()
		if sub != nil {
			sub.Unsubscribe()
		}
	})
}
