// Package notification is the core of the in-app notification feed: event
// emitters fan business events out to recipients, and the read-state tracker
// answers feed queries for a viewer.
package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

const (
	// DefaultListLimit caps feed queries that do not ask for a limit.
	DefaultListLimit = 20

	// DefaultLowStockThreshold is the quantity below which the periodic scan
	// raises a low-stock notification.
	DefaultLowStockThreshold = 10
)

// EventCreated is the push-channel event name for freshly persisted records.
const EventCreated = "notification.created"

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool, limit int) ([]*domain.Notification, error)
	CountUnreadForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error)
}

// userDirectory is the canonical registry for users and roles. "All managers"
// is always resolved through it — never through a second store.
type userDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListManagerIDs(ctx context.Context) ([]uuid.UUID, error)
}

type submissionSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StockSubmission, error)
}

type stockSource interface {
	ListBelowQuantity(ctx context.Context, threshold int) ([]*domain.StockItem, error)
}

// publisher delivers live updates to connected viewers. Strictly best-effort:
// the service calls it only after the record is durable and discards any error.
type publisher interface {
	Publish(event string, payload any) error
}

// Service provides notification emission and read-state tracking.
type Service struct {
	notifications notificationRepo
	users         userDirectory
	submissions   submissionSource
	stock         stockSource
	pub           publisher

	lowStockThreshold int
	log               *slog.Logger
}

// NewService creates a notification service. pub may be nil when no live
// channel is wired; lowStockThreshold of 0 falls back to the default.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	users userDirectory,
	submissions submissionSource,
	stock stockSource,
	pub publisher,
	lowStockThreshold int,
) *Service {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Service{
		notifications:     notifications,
		users:             users,
		submissions:       submissions,
		stock:             stock,
		pub:               pub,
		lowStockThreshold: lowStockThreshold,
		log:               log.With("service", "notification"),
	}
}

// publish pushes a freshly created record to the live channel. Failures are
// logged and dropped: the record is already durable and viewers can always
// reconstruct state via ListForViewer.
func (s *Service) publish(ctx context.Context, n *domain.Notification) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(EventCreated, n); err != nil {
		s.log.WarnContext(ctx, "live push failed",
			slog.String("notification_id", n.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
