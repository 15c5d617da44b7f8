// Package stock implements the stock-item repository using PostgreSQL.
package stock

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

const table = "stock_items"

var columns = []string{
	"id", "product_name", "category", "quantity", "unit_price", "created_at", "updated_at",
}

type row struct {
	ID          uuid.UUID `db:"id"`
	ProductName string    `db:"product_name"`
	Category    string    `db:"category"`
	Quantity    int       `db:"quantity"`
	UnitPrice   float64   `db:"unit_price"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Repo provides stock-item persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new stock-item repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

func (r *Repo) db(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.q)
}

// GetByID returns a stock item by primary key. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockItem, error) {
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

// AddQuantity adds quantity units of a product, creating the item if the
// product is not stocked yet. The unit price is refreshed on every addition.
func (r *Repo) AddQuantity(ctx context.Context, productName string, quantity int, unitPrice float64) (*domain.StockItem, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "product_name", "quantity", "unit_price").
		Values(uuid.New(), productName, quantity, unitPrice).
		Suffix(`ON CONFLICT (product_name) DO UPDATE
			SET quantity = stock_items.quantity + EXCLUDED.quantity,
			    unit_price = EXCLUDED.unit_price,
			    updated_at = now()
			RETURNING ` + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("add stock quantity: %w", err)
	}
	return toDomain(out), nil
}

// RemoveQuantity subtracts quantity units from a stock item. The quantity
// CHECK constraint rejects oversell; that surfaces as domain.ErrValidation.
func (r *Repo) RemoveQuantity(ctx context.Context, id uuid.UUID, quantity int) (*domain.StockItem, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("quantity", squirrel.Expr("quantity - ?", quantity)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
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

// ListBelowQuantity returns stock items whose quantity is strictly below the
// threshold, lowest first. Used by the periodic low-stock scan.
func (r *Repo) ListBelowQuantity(ctx context.Context, threshold int) ([]*domain.StockItem, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Lt{"quantity": threshold}).
		OrderBy("quantity ASC", "product_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	out := make([]*domain.StockItem, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

func toDomain(rw row) *domain.StockItem {
	return &domain.StockItem{
		ID:          rw.ID,
		ProductName: rw.ProductName,
		Category:    rw.Category,
		Quantity:    rw.Quantity,
		UnitPrice:   rw.UnitPrice,
		CreatedAt:   rw.CreatedAt,
		UpdatedAt:   rw.UpdatedAt,
	}
}
