// Package stock implements the stock approval workflow: attendants submit
// additions, managers approve or reject them, and approved quantities land in
// the store inventory.
package stock

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/notification"
)

type submissionRepo interface {
	Create(ctx context.Context, s *domain.StockSubmission) (*domain.StockSubmission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StockSubmission, error)
	Decide(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, decidedBy uuid.UUID, decidedAt time.Time) (*domain.StockSubmission, error)
	ListPending(ctx context.Context) ([]*domain.StockSubmission, error)
}

type stockRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StockItem, error)
	AddQuantity(ctx context.Context, productName string, quantity int, unitPrice float64) (*domain.StockItem, error)
	ListBelowQuantity(ctx context.Context, threshold int) ([]*domain.StockItem, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// notifier raises notifications after the business operation is durable.
// Emission failures are logged and swallowed: a lost notification never rolls
// back a stock decision.
type notifier interface {
	EmitStockSubmitted(ctx context.Context, in notification.StockSubmittedInput) (*domain.Notification, error)
	EmitStockApproved(ctx context.Context, in notification.StockDecisionInput) (*domain.Notification, error)
	EmitStockRejected(ctx context.Context, in notification.StockDecisionInput) (*domain.Notification, error)
	EmitOffloadRequested(ctx context.Context, in notification.OffloadRequestedInput) (*domain.Notification, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the stock submission and approval workflow.
type Service struct {
	submissions submissionRepo
	stock       stockRepo
	users       userGetter
	notifier    notifier
	tx          txManager
	log         *slog.Logger
}

// NewService creates a stock service.
func NewService(
	log *slog.Logger,
	submissions submissionRepo,
	stock stockRepo,
	users userGetter,
	notifier notifier,
	tx txManager,
) *Service {
	return &Service{
		submissions: submissions,
		stock:       stock,
		users:       users,
		notifier:    notifier,
		tx:          tx,
		log:         log.With("service", "stock"),
	}
}

// ListPending returns submissions awaiting a decision, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]*domain.StockSubmission, error) {
	return s.submissions.ListPending(ctx)
}

// GetItem returns a single stock item.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
	return s.stock.GetByID(ctx, id)
}

// ListLowStock returns items below the given quantity, lowest first. A
// threshold of 0 or less falls back to the low-stock scan default.
func (s *Service) ListLowStock(ctx context.Context, threshold int) ([]*domain.StockItem, error) {
	if threshold <= 0 {
		threshold = notification.DefaultLowStockThreshold
	}
	return s.stock.ListBelowQuantity(ctx, threshold)
}

func (s *Service) logEmitFailure(ctx context.Context, event string, err error) {
	s.log.WarnContext(ctx, "notification emission failed",
		slog.String("event", event),
		slog.String("error", err.Error()),
	)
}
