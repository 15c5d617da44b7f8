package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the approval state of a stock submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) String() string { return string(s) }

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// StockSubmission is an attendant's request to add stock, awaiting a
// manager's decision.
type StockSubmission struct {
	ID          uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   float64
	SubmittedBy uuid.UUID
	Status      SubmissionStatus
	DecidedBy   *uuid.UUID
	DecidedAt   *time.Time
	CreatedAt   time.Time
}

// StockItem is a product currently held in the store.
type StockItem struct {
	ID          uuid.UUID
	ProductName string
	Category    string
	Quantity    int
	UnitPrice   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
