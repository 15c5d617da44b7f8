package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/stock"
	"github.com/okothnm/woodline-backend/internal/transport/middleware"
)

// stockService defines the minimal interface needed by StockHandler.
type stockService interface {
	Submit(ctx context.Context, input stock.SubmitInput) (*domain.StockSubmission, error)
	Approve(ctx context.Context, input stock.DecideInput) (*domain.StockSubmission, error)
	Reject(ctx context.Context, input stock.DecideInput) (*domain.StockSubmission, error)
	ListPending(ctx context.Context) ([]*domain.StockSubmission, error)
	ReportOffload(ctx context.Context, input stock.OffloadInput) (*domain.StockItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.StockItem, error)
	ListLowStock(ctx context.Context, threshold int) ([]*domain.StockItem, error)
}

// StockHandler serves the stock workflow REST endpoints.
type StockHandler struct {
	svc stockService
	log *slog.Logger
}

// NewStockHandler creates a StockHandler.
func NewStockHandler(svc stockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{svc: svc, log: logger.With("handler", "stock")}
}

type submitStockRequest struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type offloadRequest struct {
	StockItemID string `json:"stockItemId"`
	Quantity    int    `json:"quantity"`
}

type submissionResponse struct {
	ID          string     `json:"id"`
	ProductName string     `json:"productName"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unitPrice"`
	SubmittedBy string     `json:"submittedBy"`
	Status      string     `json:"status"`
	DecidedBy   *string    `json:"decidedBy,omitempty"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type stockItemResponse struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Submit handles POST /stock/submissions.
func (h *StockHandler) Submit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req submitStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.svc.Submit(r.Context(), stock.SubmitInput{
		SubmittedBy: viewer,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubmissionResponse(sub))
}

// ListPending handles GET /stock/submissions/pending. Managers only.
func (h *StockHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerID(w, r); !ok {
		return
	}
	if err := middleware.RequireManager(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	list, err := h.svc.ListPending(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]submissionResponse, 0, len(list))
	for _, sub := range list {
		out = append(out, toSubmissionResponse(sub))
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": out})
}

// Approve handles POST /stock/submissions/{id}/approve. Managers only.
func (h *StockHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Approve)
}

// Reject handles POST /stock/submissions/{id}/reject. Managers only.
func (h *StockHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Reject)
}

func (h *StockHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, input stock.DecideInput) (*domain.StockSubmission, error),
) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sub, err := fn(r.Context(), stock.DecideInput{
		SubmissionID: id,
		DecidedBy:    viewer,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// Offload handles POST /stock/offload.
func (h *StockHandler) Offload(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req offloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	itemID, err := uuid.Parse(req.StockItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid stockItemId")
		return
	}

	item, err := h.svc.ReportOffload(r.Context(), stock.OffloadInput{
		StockItemID: itemID,
		ReportedBy:  viewer,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toStockItemResponse(item))
}

// GetItem handles GET /stock/items/{id}.
func (h *StockHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerID(w, r); !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toStockItemResponse(item))
}

// ListLow handles GET /stock/low?threshold=10. Managers only.
func (h *StockHandler) ListLow(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerID(w, r); !ok {
		return
	}
	if err := middleware.RequireManager(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	threshold := queryInt(r, "threshold", 0)

	list, err := h.svc.ListLowStock(r.Context(), threshold)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]stockItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toStockItemResponse(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func toSubmissionResponse(s *domain.StockSubmission) submissionResponse {
	resp := submissionResponse{
		ID:          s.ID.String(),
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		SubmittedBy: s.SubmittedBy.String(),
		Status:      s.Status.String(),
		DecidedAt:   s.DecidedAt,
		CreatedAt:   s.CreatedAt,
	}
	if s.DecidedBy != nil {
		id := s.DecidedBy.String()
		resp.DecidedBy = &id
	}
	return resp
}

func toStockItemResponse(i *domain.StockItem) stockItemResponse {
	return stockItemResponse{
		ID:          i.ID.String(),
		ProductName: i.ProductName,
		Category:    i.Category,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
