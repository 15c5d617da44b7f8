package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// Priorities and action flags are fixed per event type; emitters never take
// them as input.

// EmitStockSubmitted notifies all managers that an attendant submitted stock
// for approval.
func (s *Service) EmitStockSubmitted(ctx context.Context, in StockSubmittedInput) (*domain.Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	managers, err := s.resolveManagers(ctx)
	if err != nil {
		return nil, err
	}
	if len(managers) == 0 {
		return s.skip(ctx, domain.NotificationStockSubmitted), nil
	}

	return s.create(ctx, &domain.Notification{
		ID:       uuid.New(),
		Type:     domain.NotificationStockSubmitted,
		Title:    "Stock Requires Approval",
		Message:  fmt.Sprintf("%s has added %d units of %s that requires your approval", in.AttendantName, in.Quantity, in.ProductName),
		Priority: domain.PriorityHigh,
		Related: &domain.EntityRef{
			Kind: domain.EntityKindStockSubmission,
			ID:   in.SubmissionID,
		},
		InitiatedBy:    &in.AttendantID,
		Recipients:     managers,
		Status:         domain.NotificationUnread,
		ActionRequired: true,
		ActionURL:      ptr("/approve-stock"),
	})
}

// EmitStockApproved notifies the submitting attendant that a manager approved
// their submission. If the submission no longer exists the emission is
// skipped, not failed.
func (s *Service) EmitStockApproved(ctx context.Context, in StockDecisionInput) (*domain.Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	recipients, err := s.resolveSubmitterOf(ctx, in.SubmissionID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return s.skip(ctx, domain.NotificationStockApproved), nil
	}

	return s.create(ctx, &domain.Notification{
		ID:       uuid.New(),
		Type:     domain.NotificationStockApproved,
		Title:    "Stock Approved",
		Message:  fmt.Sprintf("%s approved %d units of %s", in.ManagerName, in.Quantity, in.ProductName),
		Priority: domain.PriorityMedium,
		Related: &domain.EntityRef{
			Kind: domain.EntityKindStockSubmission,
			ID:   in.SubmissionID,
		},
		InitiatedBy: &in.ManagerID,
		Recipients:  recipients,
		Status:      domain.NotificationUnread,
		ActionURL:   ptr("/stock-list"),
	})
}

// EmitStockRejected notifies the submitting attendant that a manager rejected
// their submission.
func (s *Service) EmitStockRejected(ctx context.Context, in StockDecisionInput) (*domain.Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	recipients, err := s.resolveSubmitterOf(ctx, in.SubmissionID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return s.skip(ctx, domain.NotificationStockRejected), nil
	}

	return s.create(ctx, &domain.Notification{
		ID:       uuid.New(),
		Type:     domain.NotificationStockRejected,
		Title:    "Stock Rejected",
		Message:  fmt.Sprintf("%s rejected %d units of %s", in.ManagerName, in.Quantity, in.ProductName),
		Priority: domain.PriorityMedium,
		Related: &domain.EntityRef{
			Kind: domain.EntityKindStockSubmission,
			ID:   in.SubmissionID,
		},
		InitiatedBy: &in.ManagerID,
		Recipients:  recipients,
		Status:      domain.NotificationUnread,
		ActionURL:   ptr("/approve-stock"),
	})
}

// EmitSaleMade notifies all managers that an attendant recorded a sale.
func (s *Service) EmitSaleMade(ctx context.Context, in SaleInput) (*domain.Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	managers, err := s.resolveManagers(ctx)
	if err != nil {
		return nil, err
	}
	if len(managers) == 0 {
		return s.skip(ctx, domain.NotificationSaleMade), nil
	}

	return s.create(ctx, &domain.Notification{
		ID:       uuid.New(),
		Type:     domain.NotificationSaleMade,
		Title:    "New Sale",
		Message:  fmt.Sprintf("%s made a sale of $%.2f to %s", in.AttendantName, in.Amount, in.CustomerName),
		Priority: domain.PriorityMedium,
		Related: &domain.EntityRef{
			Kind: domain.EntityKindSale,
			ID:   in.SaleID,
		},
		InitiatedBy: &in.AttendantID,
		Recipients:  managers,
		Status:      domain.NotificationUnread,
		ActionURL:   ptr("/sales-list"),
	})
}

// EmitLargeSale notifies all managers about a sale above the large-sale
// threshold. The threshold decision belongs to the caller; this emitter only
// records the fact.
func (s *Service) EmitLargeSale(ctx context.Context, in SaleInput) (*domain.Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	managers, err := s.resolveManagers(ctx)
	if err != nil {
		return nil, err
	}
	if len(managers) == 0 {
		return s.skip(ctx, domain.NotificationLargeSale), nil
	}

	return s.create(ctx, &domain.Notification{
		ID:       uuid.New(),
		Type:     domain.NotificationLargeSale,
		Title:    "Large Sale Completed",
		Message:  fmt.Sprintf("%s completed a large sale of $%.2f to %s", in.AttendantName, in.Amount, in.CustomerName),
		Priority: domain.PriorityMedium,
		Related: &domain.EntityRef{
			Kind: domain.EntityKindSale,
			ID:   in.SaleID,
		},
		InitiatedBy: &in.AttendantID,
		Recipients:  managers,
		Status:      domain.NotificationUnread,
		ActionURL:   ptr("/sales-list"),
	})
}

// EmitOffloadRequested notifies all managers that arrived stock needs
// offloading.
func (s *Service) EmitOffloadRequested(ctx context.Context, in OffloadRequestedInput) (*domain.Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	managers, err := s.resolveManagers(ctx)
	if err != nil {
		return nil, err
	}
	if len(managers) == 0 {
		return s.skip(ctx, domain.NotificationOffloadRequested), nil
	}

	return s.create(ctx, &domain.Notification{
		ID:       uuid.New(),
		Type:     domain.NotificationOffloadRequested,
		Title:    "Stock Arrived - Needs Offloading",
		Message:  fmt.Sprintf("%s is offloading %d units of %s", in.AttendantName, in.Quantity, in.ProductName),
		Priority: domain.PriorityUrgent,
		Related: &domain.EntityRef{
			Kind: domain.EntityKindStock,
			ID:   in.StockItemID,
		},
		InitiatedBy:    &in.AttendantID,
		Recipients:     managers,
		Status:         domain.NotificationUnread,
		ActionRequired: true,
		ActionURL:      ptr("/loading/report"),
	})
}

// EmitTaskCompleted notifies all managers that an attendant finished a task.
func (s *Service) EmitTaskCompleted(ctx context.Context, in TaskCompletedInput) (*domain.Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	managers, err := s.resolveManagers(ctx)
	if err != nil {
		return nil, err
	}
	if len(managers) == 0 {
		return s.skip(ctx, domain.NotificationTaskCompleted), nil
	}

	return s.create(ctx, &domain.Notification{
		ID:       uuid.New(),
		Type:     domain.NotificationTaskCompleted,
		Title:    "Task Completed",
		Message:  fmt.Sprintf("%s completed task: %s - %s", in.AttendantName, in.TaskType, in.Description),
		Priority: domain.PriorityMedium,
		Related: &domain.EntityRef{
			Kind: domain.EntityKindTask,
			ID:   in.TaskID,
		},
		InitiatedBy: &in.AttendantID,
		Recipients:  managers,
		Status:      domain.NotificationUnread,
		ActionURL:   ptr("/task-reports"),
	})
}

// EmitLowStockBatch scans stock levels and raises one system notification per
// item below the threshold. A scan over zero qualifying items emits nothing.
// Emission keeps going past per-item failures so one bad record cannot
// silence the rest of the batch.
func (s *Service) EmitLowStockBatch(ctx context.Context) ([]*domain.Notification, error) {
	items, err := s.stock.ListBelowQuantity(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("scan low stock: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	managers, err := s.resolveManagers(ctx)
	if err != nil {
		return nil, err
	}
	if len(managers) == 0 {
		s.skip(ctx, domain.NotificationLowStock)
		return nil, nil
	}

	created := make([]*domain.Notification, 0, len(items))
	for _, item := range items {
		n, err := s.create(ctx, &domain.Notification{
			ID:       uuid.New(),
			Type:     domain.NotificationLowStock,
			Title:    "Low Stock Alert",
			Message:  fmt.Sprintf("%s is running low: %d units remaining", item.ProductName, item.Quantity),
			Priority: domain.PriorityHigh,
			Related: &domain.EntityRef{
				Kind: domain.EntityKindStock,
				ID:   item.ID,
			},
			InitiatedBy:    nil, // system event
			Recipients:     managers,
			Status:         domain.NotificationUnread,
			ActionRequired: true,
			ActionURL:      ptr("/stock-report"),
		})
		if err != nil {
			s.log.ErrorContext(ctx, "low stock emission failed",
				slog.String("stock_item_id", item.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		created = append(created, n)
	}
	return created, nil
}

// create validates, persists and then best-effort publishes a notification.
// The push can never fail the emission: by the time it runs the record is
// already durable.
func (s *Service) create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	created, err := s.notifications.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.publish(ctx, created)

	s.log.InfoContext(ctx, "notification created",
		slog.String("notification_id", created.ID.String()),
		slog.String("type", created.Type.String()),
		slog.Int("recipients", len(created.Recipients)),
	)

	return created, nil
}

// skip logs an emission that found nobody to notify and returns nil: having
// no recipients is a degenerate success, not an error.
func (s *Service) skip(ctx context.Context, typ domain.NotificationType) *domain.Notification {
	s.log.WarnContext(ctx, "notification skipped: no recipients",
		slog.String("type", typ.String()),
	)
	return nil
}

func ptr(s string) *string { return &s }
