// Package submission implements the stock-submission repository using PostgreSQL.
package submission

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

const table = "stock_submissions"

var columns = []string{
	"id", "product_name", "quantity", "unit_price",
	"submitted_by", "status", "decided_by", "decided_at", "created_at",
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	ProductName string     `db:"product_name"`
	Quantity    int        `db:"quantity"`
	UnitPrice   float64    `db:"unit_price"`
	SubmittedBy uuid.UUID  `db:"submitted_by"`
	Status      string     `db:"status"`
	DecidedBy   *uuid.UUID `db:"decided_by"`
	DecidedAt   *time.Time `db:"decided_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Repo provides stock-submission persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new stock-submission repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

func (r *Repo) db(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.q)
}

// Create inserts a pending submission.
func (r *Repo) Create(ctx context.Context, s *domain.StockSubmission) (*domain.StockSubmission, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "product_name", "quantity", "unit_price", "submitted_by", "status").
		Values(s.ID, s.ProductName, s.Quantity, s.UnitPrice, s.SubmittedBy, s.Status.String()).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, s.ID)
	}
	return toDomain(out), nil
}

// GetByID returns a submission by primary key. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockSubmission, error) {
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

// Decide records a manager's decision on a pending submission.
// Only pending submissions can be decided; deciding an already-decided
// submission returns domain.ErrNotFound so callers can treat it as gone.
func (r *Repo) Decide(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, decidedBy uuid.UUID, decidedAt time.Time) (*domain.StockSubmission, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("status", status.String()).
		Set("decided_by", decidedBy).
		Set("decided_at", decidedAt).
		Where(squirrel.Eq{"id": id, "status": domain.SubmissionPending.String()}).
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

// ListPending returns pending submissions, oldest first.
func (r *Repo) ListPending(ctx context.Context) ([]*domain.StockSubmission, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.SubmissionPending.String()}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}

	out := make([]*domain.StockSubmission, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// Delete removes a submission. Returns domain.ErrNotFound if absent.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.db(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, table, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock_submission %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toDomain(rw row) *domain.StockSubmission {
	return &domain.StockSubmission{
		ID:          rw.ID,
		ProductName: rw.ProductName,
		Quantity:    rw.Quantity,
		UnitPrice:   rw.UnitPrice,
		SubmittedBy: rw.SubmittedBy,
		Status:      domain.SubmissionStatus(rw.Status),
		DecidedBy:   rw.DecidedBy,
		DecidedAt:   rw.DecidedAt,
		CreatedAt:   rw.CreatedAt,
	}
}
