package stock

import (
	"strings"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// SubmitInput holds an attendant's request to add stock.
type SubmitInput struct {
	SubmittedBy uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError
	if i.SubmittedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "submitted_by", Message: "required"})
	}
	if strings.TrimSpace(i.ProductName) == "" {
		errs = append(errs, domain.FieldError{Field: "product_name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if i.UnitPrice < 0 {
		errs = append(errs, domain.FieldError{Field: "unit_price", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DecideInput holds a manager's decision on a pending submission.
type DecideInput struct {
	SubmissionID uuid.UUID
	DecidedBy    uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DecideInput) Validate() error {
	var errs []domain.FieldError
	if i.SubmissionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "submission_id", Message: "required"})
	}
	if i.DecidedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "decided_by", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// OffloadInput holds an attendant's report that arrived stock is being
// offloaded.
type OffloadInput struct {
	StockItemID uuid.UUID
	ReportedBy  uuid.UUID
	Quantity    int
}

// Validate checks all fields and collects all errors.
func (i OffloadInput) Validate() error {
	var errs []domain.FieldError
	if i.StockItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "stock_item_id", Message: "required"})
	}
	if i.ReportedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "reported_by", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
