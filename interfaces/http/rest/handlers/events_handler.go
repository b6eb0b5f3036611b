package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"etherlink/domain/events"
)

// EventSource delivers every store topic to a handler until unsubscribed
type EventSource interface {
	SubscribeAll(handler func(events.Topic)) (unsubscribe func())
}

// StreamBuffer bounds notifications queued for one slow client. Further
// notifications are dropped; each one only says "re-read", so the next
// delivered event still brings the client up to date.
const StreamBuffer = 32

// EventsHandler streams change notifications as server-sent events
type EventsHandler struct {
	source    EventSource
	logger    *zap.Logger
	heartbeat time.Duration
	now       func() time.Time
}

// NewEventsHandler creates a new event stream handler
func NewEventsHandler(source EventSource, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		source:    source,
		logger:    logger,
		heartbeat: 30 * time.Second,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type changeEvent struct {
	Topic events.Topic `json:"topic"`
	At    time.Time    `json:"at"`
}

// Stream handles GET /events. The subscription is dropped when the client
// disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		h.logger.Warn("Event stream not flushable", zap.Error(err))
		return
	}

	changes := make(chan changeEvent, StreamBuffer)
	unsubscribe := h.source.SubscribeAll(func(topic events.Topic) {
		select {
		case changes <- changeEvent{Topic: topic, At: h.now()}:
		default:
			h.logger.Debug("Event stream client lagging, notification dropped",
				zap.String("topic", topic.String()))
		}
	})
	defer unsubscribe()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case change := <-changes:
			data, err := json.Marshal(change)
			if err != nil {
				h.logger.Error("Failed to encode change event", zap.String("topic", change.Topic.String()), zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Topic, data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
