package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sale is a completed sale of a stock item to a customer.
// TotalAmount is always Quantity × UnitPrice, computed at recording time.
type Sale struct {
	ID           uuid.UUID
	StockItemID  uuid.UUID
	ProductName  string
	CustomerName string
	Quantity     int
	UnitPrice    float64
	TotalAmount  float64
	RecordedBy   uuid.UUID
	CreatedAt    time.Time
}

// TaskStatus is the completion state of an assigned task.
type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	return s == TaskOpen || s == TaskDone
}

// Task is a unit of work assigned to an attendant, such as a loading or
// offloading job.
type Task struct {
	ID          uuid.UUID
	Type        string
	Description string
	AssignedTo  uuid.UUID
	Status      TaskStatus
	CompletedAt *time.Time
	CreatedAt   time.Time
}
