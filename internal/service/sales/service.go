// Package sales records completed sales: inventory is decremented and the
// sale persisted atomically, then the managers are notified. Sales above the
// large-sale threshold raise an additional notification.
package sales

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/notification"
)

// DefaultLargeSaleThreshold is the total amount at or above which a sale
// counts as large.
const DefaultLargeSaleThreshold = 50000

type saleRepo interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error)
}

type stockRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StockItem, error)
	RemoveQuantity(ctx context.Context, id uuid.UUID, quantity int) (*domain.StockItem, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type notifier interface {
	EmitSaleMade(ctx context.Context, in notification.SaleInput) (*domain.Notification, error)
	EmitLargeSale(ctx context.Context, in notification.SaleInput) (*domain.Notification, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides sale recording and queries.
type Service struct {
	sales    saleRepo
	stock    stockRepo
	users    userGetter
	notifier notifier
	tx       txManager

	largeSaleThreshold float64
	log                *slog.Logger
}

// NewService creates a sales service. largeSaleThreshold of 0 falls back to
// the default.
func NewService(
	log *slog.Logger,
	sales saleRepo,
	stock stockRepo,
	users userGetter,
	notifier notifier,
	tx txManager,
	largeSaleThreshold float64,
) *Service {
	if largeSaleThreshold <= 0 {
		largeSaleThreshold = DefaultLargeSaleThreshold
	}
	return &Service{
		sales:              sales,
		stock:              stock,
		users:              users,
		notifier:           notifier,
		tx:                 tx,
		largeSaleThreshold: largeSaleThreshold,
		log:                log.With("service", "sales"),
	}
}

// GetSale returns a single sale.
func (s *Service) GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return s.sales.GetByID(ctx, id)
}

// ListRecent returns the most recent sales, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error) {
	return s.sales.ListRecent(ctx, limit)
}

func (s *Service) logEmitFailure(ctx context.Context, event string, err error) {
	s.log.WarnContext(ctx, "notification emission failed",
		slog.String("event", event),
		slog.String("error", err.Error()),
	)
}
