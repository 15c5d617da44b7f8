package stock

import (
	"context"
	"fmt"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/notification"
)

// ReportOffload records that an attendant has started offloading arrived
// stock and raises the urgent notification for the managers.
func (s *Service) ReportOffload(ctx context.Context, in OffloadInput) (*domain.StockItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	reporter, err := s.users.GetByID(ctx, in.ReportedBy)
	if err != nil {
		return nil, fmt.Errorf("get reporter %s: %w", in.ReportedBy, err)
	}

	item, err := s.stock.GetByID(ctx, in.StockItemID)
	if err != nil {
		return nil, fmt.Errorf("get stock item %s: %w", in.StockItemID, err)
	}

	if _, err := s.notifier.EmitOffloadRequested(ctx, notification.OffloadRequestedInput{
		StockItemID:   item.ID,
		AttendantID:   reporter.ID,
		AttendantName: reporter.Name,
		ProductName:   item.ProductName,
		Quantity:      in.Quantity,
	}); err != nil {
		s.logEmitFailure(ctx, "offload_requested", err)
	}

	return item, nil
}
