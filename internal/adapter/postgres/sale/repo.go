// Package sale implements the sale repository using PostgreSQL.
package sale

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

const table = "sales"

var columns = []string{
	"id", "stock_item_id", "product_name", "customer_name",
	"quantity", "unit_price", "total_amount", "recorded_by", "created_at",
}

type row struct {
	ID           uuid.UUID `db:"id"`
	StockItemID  uuid.UUID `db:"stock_item_id"`
	ProductName  string    `db:"product_name"`
	CustomerName string    `db:"customer_name"`
	Quantity     int       `db:"quantity"`
	UnitPrice    float64   `db:"unit_price"`
	TotalAmount  float64   `db:"total_amount"`
	RecordedBy   uuid.UUID `db:"recorded_by"`
	CreatedAt    time.Time `db:"created_at"`
}

// Repo provides sale persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new sale repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

func (r *Repo) db(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.q)
}

// Create inserts a sale record.
func (r *Repo) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "stock_item_id", "product_name", "customer_name",
			"quantity", "unit_price", "total_amount", "recorded_by").
		Values(s.ID, s.StockItemID, s.ProductName, s.CustomerName,
			s.Quantity, s.UnitPrice, s.TotalAmount, s.RecordedBy).
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

// GetByID returns a sale by primary key. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
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

// ListRecent returns the most recent sales, newest first, capped at limit.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]*domain.Sale, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	out := make([]*domain.Sale, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

func toDomain(rw row) *domain.Sale {
	return &domain.Sale{
		ID:           rw.ID,
		StockItemID:  rw.StockItemID,
		ProductName:  rw.ProductName,
		CustomerName: rw.CustomerName,
		Quantity:     rw.Quantity,
		UnitPrice:    rw.UnitPrice,
		TotalAmount:  rw.TotalAmount,
		RecordedBy:   rw.RecordedBy,
		CreatedAt:    rw.CreatedAt,
	}
}
