// Package task manages work assigned to attendants, such as deliveries and
// loading jobs, and raises a notification when a task is completed.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/notification"
)

type taskRepo interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) (*domain.Task, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type notifier interface {
	EmitTaskCompleted(ctx context.Context, in notification.TaskCompletedInput) (*domain.Notification, error)
}

// Service provides task assignment and completion.
type Service struct {
	tasks    taskRepo
	users    userGetter
	notifier notifier
	log      *slog.Logger
}

// NewService creates a task service.
func NewService(log *slog.Logger, tasks taskRepo, users userGetter, notifier notifier) *Service {
	return &Service{
		tasks:    tasks,
		users:    users,
		notifier: notifier,
		log:      log.With("service", "task"),
	}
}

// AssignInput holds a new task assignment.
type AssignInput struct {
	Type        string
	Description string
	AssignedTo  uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i AssignInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Type) == "" {
		errs = append(errs, domain.FieldError{Field: "type", Message: "required"})
	}
	if i.AssignedTo == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assigned_to", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Assign creates an open task for an attendant.
func (s *Service) Assign(ctx context.Context, in AssignInput) (*domain.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, in.AssignedTo); err != nil {
		return nil, fmt.Errorf("get assignee %s: %w", in.AssignedTo, err)
	}

	created, err := s.tasks.Create(ctx, &domain.Task{
		ID:          uuid.New(),
		Type:        in.Type,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		Status:      domain.TaskOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// Get returns a single task.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Complete marks an open task done on behalf of its assignee and notifies
// the managers. Only the assignee may complete a task; completing a task
// that is already done returns domain.ErrNotFound.
func (s *Service) Complete(ctx context.Context, completedBy, taskID uuid.UUID) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}
	if t.AssignedTo != completedBy {
		return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrForbidden)
	}

	assignee, err := s.users.GetByID(ctx, completedBy)
	if err != nil {
		return nil, fmt.Errorf("get assignee %s: %w", completedBy, err)
	}

	done, err := s.tasks.Complete(ctx, taskID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("complete task %s: %w", taskID, err)
	}

	if _, err := s.notifier.EmitTaskCompleted(ctx, notification.TaskCompletedInput{
		TaskID:        done.ID,
		AttendantID:   assignee.ID,
		AttendantName: assignee.Name,
		TaskType:      done.Type,
		Description:   done.Description,
	}); err != nil {
		s.log.WarnContext(ctx, "notification emission failed",
			slog.String("event", "task_completed"),
			slog.String("error", err.Error()),
		)
	}

	return done, nil
}
