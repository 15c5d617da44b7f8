package notification

import (
	"strings"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// StockSubmittedInput holds the facts for a stock-submission event.
type StockSubmittedInput struct {
	SubmissionID  uuid.UUID
	AttendantID   uuid.UUID
	AttendantName string
	ProductName   string
	Quantity      int
}

// Validate checks all fields and collects all errors.
func (i StockSubmittedInput) Validate() error {
	var errs []domain.FieldError
	if i.SubmissionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "submission_id", Message: "required"})
	}
	if i.AttendantID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "attendant_id", Message: "required"})
	}
	if strings.TrimSpace(i.AttendantName) == "" {
		errs = append(errs, domain.FieldError{Field: "attendant_name", Message: "required"})
	}
	if strings.TrimSpace(i.ProductName) == "" {
		errs = append(errs, domain.FieldError{Field: "product_name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// StockDecisionInput holds the facts for an approval or rejection event.
type StockDecisionInput struct {
	SubmissionID uuid.UUID
	ManagerID    uuid.UUID
	ManagerName  string
	ProductName  string
	Quantity     int
}

// Validate checks all fields and collects all errors.
func (i StockDecisionInput) Validate() error {
	var errs []domain.FieldError
	if i.SubmissionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "submission_id", Message: "required"})
	}
	if i.ManagerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "manager_id", Message: "required"})
	}
	if strings.TrimSpace(i.ManagerName) == "" {
		errs = append(errs, domain.FieldError{Field: "manager_name", Message: "required"})
	}
	if strings.TrimSpace(i.ProductName) == "" {
		errs = append(errs, domain.FieldError{Field: "product_name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SaleInput holds the facts for a sale event, large or regular.
type SaleInput struct {
	SaleID        uuid.UUID
	AttendantID   uuid.UUID
	AttendantName string
	CustomerName  string
	Amount        float64
}

// Validate checks all fields and collects all errors.
func (i SaleInput) Validate() error {
	var errs []domain.FieldError
	if i.SaleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "sale_id", Message: "required"})
	}
	if i.AttendantID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "attendant_id", Message: "required"})
	}
	if strings.TrimSpace(i.AttendantName) == "" {
		errs = append(errs, domain.FieldError{Field: "attendant_name", Message: "required"})
	}
	if strings.TrimSpace(i.CustomerName) == "" {
		errs = append(errs, domain.FieldError{Field: "customer_name", Message: "required"})
	}
	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// OffloadRequestedInput holds the facts for an offload-request event.
type OffloadRequestedInput struct {
	StockItemID   uuid.UUID
	AttendantID   uuid.UUID
	AttendantName string
	ProductName   string
	Quantity      int
}

// Validate checks all fields and collects all errors.
func (i OffloadRequestedInput) Validate() error {
	var errs []domain.FieldError
	if i.StockItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "stock_item_id", Message: "required"})
	}
	if i.AttendantID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "attendant_id", Message: "required"})
	}
	if strings.TrimSpace(i.AttendantName) == "" {
		errs = append(errs, domain.FieldError{Field: "attendant_name", Message: "required"})
	}
	if strings.TrimSpace(i.ProductName) == "" {
		errs = append(errs, domain.FieldError{Field: "product_name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// TaskCompletedInput holds the facts for a task-completion event.
type TaskCompletedInput struct {
	TaskID        uuid.UUID
	AttendantID   uuid.UUID
	AttendantName string
	TaskType      string
	Description   string
}

// Validate checks all fields and collects all errors.
func (i TaskCompletedInput) Validate() error {
	var errs []domain.FieldError
	if i.TaskID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "required"})
	}
	if i.AttendantID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "attendant_id", Message: "required"})
	}
	if strings.TrimSpace(i.AttendantName) == "" {
		errs = append(errs, domain.FieldError{Field: "attendant_name", Message: "required"})
	}
	if strings.TrimSpace(i.TaskType) == "" {
		errs = append(errs, domain.FieldError{Field: "task_type", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
