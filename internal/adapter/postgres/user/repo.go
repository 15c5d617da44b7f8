// Package user implements the user repository using PostgreSQL.
// The users table is the single canonical registry for roles: "all managers"
// is always resolved here, never from a separate collection.
package user

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

const table = "users"

var columns = []string{"id", "email", "name", "role", "password_hash", "created_at", "updated_at"}

type row struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new user repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

func (r *Repo) db(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.q)
}

// Create inserts a new user. Returns domain.ErrAlreadyExists if the email is taken.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "email", "name", "role", "password_hash").
		Values(u.ID, u.Email, u.Name, u.Role.String(), u.PasswordHash).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, u.ID)
	}
	return toDomain(out), nil
}

// GetByID returns a user by primary key. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
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

// GetByEmail returns a user by email. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, uuid.Nil)
	}
	return toDomain(out), nil
}

// ListManagerIDs returns the ids of every user holding the manager role.
// An empty result is valid and must be handled by the caller.
func (r *Repo) ListManagerIDs(ctx context.Context) ([]uuid.UUID, error) {
	sql, args, err := postgres.Builder().
		Select("id").
		From(table).
		Where(squirrel.Eq{"role": domain.RoleManager.String()}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, r.db(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("list manager ids: %w", err)
	}
	return ids, nil
}

func toDomain(rw row) *domain.User {
	return &domain.User{
		ID:           rw.ID,
		Email:        rw.Email,
		Name:         rw.Name,
		Role:         domain.Role(rw.Role),
		PasswordHash: rw.PasswordHash,
		CreatedAt:    rw.CreatedAt,
		UpdatedAt:    rw.UpdatedAt,
	}
}
