package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/task"
	"github.com/okothnm/woodline-backend/internal/transport/middleware"
)

// taskService defines the minimal interface needed by TaskHandler.
type taskService interface {
	Assign(ctx context.Context, input task.AssignInput) (*domain.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Complete(ctx context.Context, completedBy, taskID uuid.UUID) (*domain.Task, error)
}

// TaskHandler serves the task REST endpoints.
type TaskHandler struct {
	svc taskService
	log *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(svc taskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: logger.With("handler", "tasks")}
}

type assignTaskRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Assign handles POST /tasks. Managers only.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerID(w, r); !ok {
		return
	}
	if err := middleware.RequireManager(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req assignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	assignee, err := uuid.Parse(req.AssignedTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assignedTo")
		return
	}

	t, err := h.svc.Assign(r.Context(), task.AssignInput{
		Type:        req.Type,
		Description: req.Description,
		AssignedTo:  assignee,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(t))
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerID(w, r); !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

// Complete handles POST /tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Complete(r.Context(), viewer, id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		Type:        t.Type,
		Description: t.Description,
		AssignedTo:  t.AssignedTo.String(),
		Status:      t.Status.String(),
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}
