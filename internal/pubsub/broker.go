package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Event is a single published message on a channel
type Event struct {
	Channel string          `json:"channel"`
	Name    string          `json:"name"`
	Data    json.RawMessage `json:"data"`
}

// Publisher publishes events to named channels
type Publisher interface {
	Publish(ctx context.Context, channel, name string, payload any) error
}

// Subscriber creates subscriptions to named channels
type Subscriber interface {
	Subscribe(channel string) *Subscription
}

// subscriberBufferSize bounds per-subscriber delivery; slow consumers
// drop events rather than block the hub loop
const subscriberBufferSize = 16

// Subscription is a single subscriber's view of a channel
type Subscription struct {
	hub    *hub
	events chan Event
	once   sync.Once
}

// C returns the channel events are delivered on. It is closed when the
// subscription is torn down.
func (s *Subscription) C() <-chan Event {
	return s.events
}

// Unsubscribe removes the subscription from its channel. Safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		select {
		case s.hub.unregister <- s:
		case <-s.hub.done:
			// Hub already shut down and closed the event channel
		}
	})
}

// hub manages subscribers for a single channel
type hub struct {
	channel     string
	subscribers map[*Subscription]bool
	mu          sync.RWMutex
	logger      *slog.Logger

	register   chan *Subscription
	unregister chan *Subscription
	publish    chan Event
	done       chan struct{}
}

func newHub(channel string, logger *slog.Logger) *hub {
	return &hub{
		channel:     channel,
		subscribers: make(map[*Subscription]bool),
		logger:      logger.With(slog.String("channel", channel)),
		register:    make(chan *Subscription),
		unregister:  make(chan *Subscription),
		publish:     make(chan Event, 256),
		done:        make(chan struct{}),
	}
}

// run is the hub's event loop
func (h *hub) run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			count := len(h.subscribers)
			h.mu.Unlock()
			h.logger.Debug("subscriber registered",
				slog.Int("total_subscribers", count))

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.events)
				count := len(h.subscribers)
				h.mu.Unlock()
				h.logger.Debug("subscriber unregistered",
					slog.Int("total_subscribers", count))
			} else {
				h.mu.Unlock()
			}

		case event := <-h.publish:
			h.mu.RLock()
			dropped := 0
			for sub := range h.subscribers {
				select {
				case sub.events <- event:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("event dropped - subscriber buffer full",
					slog.String("event", event.Name),
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for sub := range h.subscribers {
				close(sub.events)
				delete(h.subscribers, sub)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *hub) subscribe() *Subscription {
	sub := &Subscription{
		hub:    h,
		events: make(chan Event, subscriberBufferSize),
	}
	h.register <- sub
	return sub
}

func (h *hub) broadcast(event Event) {
	select {
	case h.publish <- event:
	default:
		h.logger.Warn("publish dropped - hub buffer full",
			slog.String("event", event.Name))
	}
}

func (h *hub) subscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Broker is an in-process pub/sub broker keyed by channel name
type Broker struct {
	hubs   map[string]*hub
	mu     sync.RWMutex
	closed bool
	logger *slog.Logger
}

// NewBroker creates a new Broker
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		hubs:   make(map[string]*hub),
		logger: logger.With(slog.String("component", "pubsub")),
	}
}

var _ Publisher = (*Broker)(nil)
var _ Subscriber = (*Broker)(nil)

// Publish marshals payload to JSON and delivers it to every current
// subscriber of the channel. Delivery is best-effort; subscribers with
// full buffers miss the event.
func (b *Broker) Publish(ctx context.Context, channel, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload for event %s: %w", name, err)
	}

	hub := b.getOrCreateHub(channel)
	hub.broadcast(Event{
		Channel: channel,
		Name:    name,
		Data:    data,
	})
	return nil
}

// Subscribe registers a new subscription to a channel
func (b *Broker) Subscribe(channel string) *Subscription {
	return b.getOrCreateHub(channel).subscribe()
}

// SubscriberCount returns the number of subscribers on a channel
func (b *Broker) SubscriberCount(channel string) int {
	b.mu.RLock()
	h, ok := b.hubs[channel]
	b.mu.RUnlock()
	if !ok {
		return 0
	}
	return h.subscriberCount()
}

// Close shuts down all channel hubs and closes their subscriptions
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for name, h := range b.hubs {
		close(h.done)
		delete(b.hubs, name)
	}
	b.logger.Info("pubsub broker closed")
}

func (b *Broker) getOrCreateHub(channel string) *hub {
	b.mu.RLock()
	h, ok := b.hubs[channel]
	b.mu.RUnlock()
	if ok {
		return h
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if h, ok := b.hubs[channel]; ok {
		return h
	}
	h = newHub(channel, b.logger)
	b.hubs[channel] = h
	go h.run()
	return h
}
