// Package task implements the task repository using PostgreSQL.
package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/adapter/postgres"
	"github.com/okothnm/woodline-backend/internal/domain"
)

const table = "tasks"

var columns = []string{
	"id", "type", "description", "assigned_to", "status", "completed_at", "created_at",
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	Type        string     `db:"type"`
	Description string     `db:"description"`
	AssignedTo  uuid.UUID  `db:"assigned_to"`
	Status      string     `db:"status"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new task repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

func (r *Repo) db(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.q)
}

// Create inserts an open task.
func (r *Repo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "type", "description", "assigned_to", "status").
		Values(t.ID, t.Type, t.Description, t.AssignedTo, t.Status.String()).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, t.ID)
	}
	return toDomain(out), nil
}

// GetByID returns a task by primary key. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, id)
	}
	return toDomain(out), nil
}

// Complete marks an open task done. Completing an already-done task returns
// domain.ErrNotFound so callers can detect the double completion.
func (r *Repo) Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) (*domain.Task, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("status", domain.TaskDone.String()).
		Set("completed_at", completedAt).
		Where(squirrel.Eq{"id": id, "status": domain.TaskOpen.String()}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, id)
	}
	return toDomain(out), nil
}

func toDomain(rw row) *domain.Task {
	return &domain.Task{
		ID:          rw.ID,
		Type:        rw.Type,
		Description: rw.Description,
		AssignedTo:  rw.AssignedTo,
		Status:      domain.TaskStatus(rw.Status),
		CompletedAt: rw.CompletedAt,
		CreatedAt:   rw.CreatedAt,
	}
}
