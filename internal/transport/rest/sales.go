package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/sales"
)

// salesService defines the minimal interface needed by SalesHandler.
type salesService interface {
	Record(ctx context.Context, input sales.RecordInput) (*domain.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error)
}

// SalesHandler serves the sales REST endpoints.
type SalesHandler struct {
	svc salesService
	log *slog.Logger
}

// NewSalesHandler creates a SalesHandler.
func NewSalesHandler(svc salesService, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{svc: svc, log: logger.With("handler", "sales")}
}

type recordSaleRequest struct {
	StockItemID  string `json:"stockItemId"`
	CustomerName string `json:"customerName"`
	Quantity     int    `json:"quantity"`
}

type saleResponse struct {
	ID           string    `json:"id"`
	StockItemID  string    `json:"stockItemId"`
	ProductName  string    `json:"productName"`
	CustomerName string    `json:"customerName"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unitPrice"`
	TotalAmount  float64   `json:"totalAmount"`
	RecordedBy   string    `json:"recordedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Record handles POST /sales.
func (h *SalesHandler) Record(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	itemID, err := uuid.Parse(req.StockItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid stockItemId")
		return
	}

	sale, err := h.svc.Record(r.Context(), sales.RecordInput{
		StockItemID:  itemID,
		CustomerName: req.CustomerName,
		Quantity:     req.Quantity,
		RecordedBy:   viewer,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSaleResponse(sale))
}

// Get handles GET /sales/{id}.
func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerID(w, r); !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sale, err := h.svc.GetSale(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSaleResponse(sale))
}

// List handles GET /sales?limit=20.
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := viewerID(w, r); !ok {
		return
	}

	limit := queryInt(r, "limit", 0)

	list, err := h.svc.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]saleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, toSaleResponse(sale))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sales": out})
}

func toSaleResponse(s *domain.Sale) saleResponse {
	return saleResponse{
		ID:           s.ID.String(),
		StockItemID:  s.StockItemID.String(),
		ProductName:  s.ProductName,
		CustomerName: s.CustomerName,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		TotalAmount:  s.TotalAmount,
		RecordedBy:   s.RecordedBy.String(),
		CreatedAt:    s.CreatedAt,
	}
}
