package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the business event a notification was created for.
type NotificationType string

const (
	NotificationStockSubmitted   NotificationType = "stock_submitted"
	NotificationStockApproved    NotificationType = "stock_approved"
	NotificationStockRejected    NotificationType = "stock_rejected"
	NotificationSaleMade         NotificationType = "sale_made"
	NotificationLargeSale        NotificationType = "large_sale"
	NotificationLowStock         NotificationType = "low_stock"
	NotificationOffloadRequested NotificationType = "offload_requested"
	NotificationTaskCompleted    NotificationType = "task_completed"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationStockSubmitted, NotificationStockApproved, NotificationStockRejected,
		NotificationSaleMade, NotificationLargeSale, NotificationLowStock,
		NotificationOffloadRequested, NotificationTaskCompleted:
		return true
	}
	return false
}

// Priority ranks how urgently a notification should be surfaced to the viewer.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// NotificationStatus is the per-record read state. The only legal transition
// is unread → read; deletion removes the record instead of transitioning it.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

func (s NotificationStatus) String() string { return string(s) }

func (s NotificationStatus) IsValid() bool {
	return s == NotificationUnread || s == NotificationRead
}

// EntityKind identifies the kind of business object a notification points at.
type EntityKind string

const (
	EntityKindStockSubmission EntityKind = "STOCK_SUBMISSION"
	EntityKindStock           EntityKind = "STOCK"
	EntityKindSale            EntityKind = "SALE"
	EntityKindTask            EntityKind = "TASK"
)

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindStockSubmission, EntityKindStock, EntityKindSale, EntityKindTask:
		return true
	}
	return false
}

// EntityRef is a weak (kind, id) pointer to a business object. It carries no
// ownership: the referent may be deleted while the notification lives on, and
// lookups through it must tolerate ErrNotFound.
type EntityRef struct {
	Kind EntityKind
	ID   uuid.UUID
}

// Notification is a single event record fanned out to one or more recipients.
// Fan-out is represented as one record with multiple recipients, never one
// record per recipient.
type Notification struct {
	ID       uuid.UUID
	Type     NotificationType
	Title    string
	Message  string
	Priority Priority

	// Related points at the business object behind the event, if any.
	Related *EntityRef

	// InitiatedBy is the user who caused the event. Nil for system-generated
	// events such as low-stock alerts.
	InitiatedBy *uuid.UUID

	// Recipients lists the user IDs who should see this record. An empty set
	// means "broadcast to all managers" — see IsBroadcast.
	Recipients []uuid.UUID

	Status         NotificationStatus
	ActionRequired bool
	ActionURL      *string
	CreatedAt      time.Time
}

// IsBroadcast reports whether this notification is addressed to all managers
// rather than a closed recipient list. The empty-recipients convention is
// inherited from the data model; keep every broadcast check behind this
// predicate.
func (n *Notification) IsBroadcast() bool {
	return len(n.Recipients) == 0
}

// IsRecipient reports whether userID is in the closed recipient list.
// Always false for broadcasts; broadcast visibility is a role question,
// not a membership question.
func (n *Notification) IsRecipient(userID uuid.UUID) bool {
	return slices.Contains(n.Recipients, userID)
}

// VisibleTo reports whether a viewer with the given id and role may see this
// notification: direct recipients always, broadcasts only for managers.
func (n *Notification) VisibleTo(userID uuid.UUID, role Role) bool {
	if n.IsBroadcast() {
		return role.IsManager()
	}
	return n.IsRecipient(userID)
}

// Validate checks the invariants every stored notification must satisfy.
// Unknown types are rejected here so they can never be persisted.
func (n *Notification) Validate() error {
	var errs []FieldError

	if !n.Type.IsValid() {
		errs = append(errs, FieldError{Field: "type", Message: "unknown notification type"})
	}
	if strings.TrimSpace(n.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(n.Message) == "" {
		errs = append(errs, FieldError{Field: "message", Message: "required"})
	}
	if !n.Priority.IsValid() {
		errs = append(errs, FieldError{Field: "priority", Message: "unknown priority"})
	}
	if !n.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown status"})
	}
	if n.Related != nil {
		if !n.Related.Kind.IsValid() {
			errs = append(errs, FieldError{Field: "related.kind", Message: "unknown entity kind"})
		}
		if n.Related.ID == uuid.Nil {
			errs = append(errs, FieldError{Field: "related.id", Message: "required"})
		}
	}
	if n.InitiatedBy != nil && *n.InitiatedBy == uuid.Nil {
		errs = append(errs, FieldError{Field: "initiated_by", Message: "must be a valid user id or nil"})
	}
	for _, r := range n.Recipients {
		if r == uuid.Nil {
			errs = append(errs, FieldError{Field: "recipients", Message: "recipient ids must be non-nil"})
			break
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
