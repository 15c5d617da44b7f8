package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okothnm/woodline-backend/internal/domain"
)

// notificationService defines the minimal interface needed by
// NotificationHandler.
type notificationService interface {
	ListForViewer(ctx context.Context, viewerID uuid.UUID, limit int) ([]*domain.Notification, error)
	UnreadCountForViewer(ctx context.Context, viewerID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, viewerID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, viewerID uuid.UUID) (int, error)
	Remove(ctx context.Context, viewerID, id uuid.UUID) error
	ClearAllForViewer(ctx context.Context, viewerID uuid.UUID) (int, error)
}

// NotificationHandler serves the notification feed REST endpoints.
type NotificationHandler struct {
	svc notificationService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notifications")}
}

type entityRefResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type notificationResponse struct {
	ID             string             `json:"id"`
	Type           string             `json:"type"`
	Title          string             `json:"title"`
	Message        string             `json:"message"`
	Priority       string             `json:"priority"`
	Related        *entityRefResponse `json:"related,omitempty"`
	InitiatedBy    *string            `json:"initiatedBy,omitempty"`
	Status         string             `json:"status"`
	ActionRequired bool               `json:"actionRequired"`
	ActionURL      *string            `json:"actionUrl,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// List handles GET /notifications?limit=20.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", 0)

	list, err := h.svc.ListForViewer(r.Context(), viewer, limit)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	count, err := h.svc.UnreadCountForViewer(r.Context(), viewer)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unreadCount": count})
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.MarkRead(r.Context(), viewer, id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	count, err := h.svc.MarkAllRead(r.Context(), viewer)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"marked": count})
}

// Delete handles DELETE /notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), viewer, id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Clear handles DELETE /notifications.
func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	count, err := h.svc.ClearAllForViewer(r.Context(), viewer)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"cleared": count})
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	resp := notificationResponse{
		ID:             n.ID.String(),
		Type:           n.Type.String(),
		Title:          n.Title,
		Message:        n.Message,
		Priority:       n.Priority.String(),
		Status:         n.Status.String(),
		ActionRequired: n.ActionRequired,
		ActionURL:      n.ActionURL,
		CreatedAt:      n.CreatedAt,
	}
	if n.Related != nil {
		resp.Related = &entityRefResponse{
			Kind: n.Related.Kind.String(),
			ID:   n.Related.ID.String(),
		}
	}
	if n.InitiatedBy != nil {
		s := n.InitiatedBy.String()
		resp.InitiatedBy = &s
	}
	return resp
}
