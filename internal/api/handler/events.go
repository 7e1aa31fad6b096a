package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/pubsub"
)

// keepalivePeriod is the time between SSE keepalive comments
const keepalivePeriod = 15 * time.Second

// EventsHandler streams pub/sub channels to clients over SSE
type EventsHandler struct {
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(subscriber pubsub.Subscriber, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		subscriber: subscriber,
		logger:     logger.With(slog.String("component", "events")),
	}
}

// Stream handles GET /api/v1/events.
// The channel query parameter selects which channel to stream; it
// defaults to the movie night channel.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = model.ChannelMovieNight
	}
	if !model.KnownChannel(channel) {
		http.Error(w, "unknown channel", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	sub := h.subscriber.Subscribe(channel)
	defer sub.Unsubscribe()

	h.logger.Debug("event stream opened", slog.String("channel", channel))

	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(keepalivePeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.C():
			if !ok {
				return
			}
			if _, err := w.Write(formatSSEMessage(event.Name, event.Data)); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			h.logger.Debug("event stream closed", slog.String("channel", channel))
			return
		}
	}
}

// formatSSEMessage formats an SSE frame. Each line of data gets its
// own "data: " prefix as the protocol requires.
func formatSSEMessage(eventName string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("event: ")
	buf.WriteString(eventName)
	buf.WriteByte('\n')
	for _, line := range bytes.Split(bytes.TrimSuffix(data, []byte("\n")), []byte("\n")) {
		buf.WriteString("data: ")
		buf.Write(bytes.TrimSuffix(line, []byte("\r")))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
