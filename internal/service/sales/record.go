package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/notification"
)

// RecordInput holds the facts of a completed sale.
type RecordInput struct {
	StockItemID  uuid.UUID
	CustomerName string
	Quantity     int
	RecordedBy   uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError
	if i.StockItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "stock_item_id", Message: "required"})
	}
	if strings.TrimSpace(i.CustomerName) == "" {
		errs = append(errs, domain.FieldError{Field: "customer_name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if i.RecordedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "recorded_by", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Record persists a sale and decrements the sold quantity from inventory in
// one transaction. The total is always computed from the item's current unit
// price, never taken from the caller. Selling more than is in stock fails
// with domain.ErrValidation via the inventory constraint.
//
// Notifications go out after the commit; a sale at or above the large-sale
// threshold raises both the regular and the large-sale notification.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Sale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	recorder, err := s.users.GetByID(ctx, in.RecordedBy)
	if err != nil {
		return nil, fmt.Errorf("get recorder %s: %w", in.RecordedBy, err)
	}

	var created *domain.Sale
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		item, txErr := s.stock.GetByID(ctx, in.StockItemID)
		if txErr != nil {
			return fmt.Errorf("get stock item %s: %w", in.StockItemID, txErr)
		}

		if _, txErr = s.stock.RemoveQuantity(ctx, item.ID, in.Quantity); txErr != nil {
			return fmt.Errorf("remove stock quantity: %w", txErr)
		}

		created, txErr = s.sales.Create(ctx, &domain.Sale{
			ID:           uuid.New(),
			StockItemID:  item.ID,
			ProductName:  item.ProductName,
			CustomerName: in.CustomerName,
			Quantity:     in.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalAmount:  float64(in.Quantity) * item.UnitPrice,
			RecordedBy:   recorder.ID,
		})
		if txErr != nil {
			return fmt.Errorf("create sale: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saleFact := notification.SaleInput{
		SaleID:        created.ID,
		AttendantID:   recorder.ID,
		AttendantName: recorder.Name,
		CustomerName:  created.CustomerName,
		Amount:        created.TotalAmount,
	}

	if _, err := s.notifier.EmitSaleMade(ctx, saleFact); err != nil {
		s.logEmitFailure(ctx, "sale_made", err)
	}
	if created.TotalAmount >= s.largeSaleThreshold {
		if _, err := s.notifier.EmitLargeSale(ctx, saleFact); err != nil {
			s.logEmitFailure(ctx, "large_sale", err)
		}
	}

	return created, nil
}
