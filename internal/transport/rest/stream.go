package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/push"
	"github.com/okothnm/woodline-backend/pkg/ctxutil"
)

type streamHub interface {
	Subscribe(userID uuid.UUID, role domain.Role) *push.Subscriber
	Unsubscribe(sub *push.Subscriber)
}

// StreamHandler serves the live notification stream over Server-Sent Events.
type StreamHandler struct {
	hub streamHub
	log *slog.Logger
}

// NewStreamHandler creates a StreamHandler.
func NewStreamHandler(hub streamHub, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, log: logger.With("handler", "stream")}
}

// Stream handles GET /notifications/stream. The connection stays open until
// the client disconnects or the hub shuts down; events the client misses are
// recoverable through the regular feed endpoints.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// The role scopes broadcast delivery; a missing role subscribes as a
	// plain recipient and never sees manager-only broadcasts.
	role, _ := ctxutil.RoleFromCtx(r.Context())
	sub := h.hub.Subscribe(viewer, domain.Role(role))
	defer h.hub.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, open := <-sub.C():
			if !open {
				return
			}
			payload := e.Payload
			if n, ok := payload.(*domain.Notification); ok {
				payload = toNotificationResponse(n)
			}
			data, err := json.Marshal(payload)
			if err != nil {
				h.log.ErrorContext(r.Context(), "marshal stream event",
					slog.String("event", e.Name),
					slog.String("error", err.Error()),
				)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, data)
			flusher.Flush()
		}
	}
}
