// Package notification implements the notification repository using
// PostgreSQL. One row per notification; the recipient list is stored as a
// uuid[] column and an empty array marks a broadcast.
package notification

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

const table = "notifications"

var columns = []string{
	"id", "type", "title", "message", "priority",
	"related_kind", "related_id", "initiated_by", "recipients",
	"status", "action_required", "action_url", "created_at",
}

// row mirrors the notifications table for scanning.
type row struct {
	ID             uuid.UUID   `db:"id"`
	Type           string      `db:"type"`
	Title          string      `db:"title"`
	Message        string      `db:"message"`
	Priority       string      `db:"priority"`
	RelatedKind    *string     `db:"related_kind"`
	RelatedID      *uuid.UUID  `db:"related_id"`
	InitiatedBy    *uuid.UUID  `db:"initiated_by"`
	Recipients     []uuid.UUID `db:"recipients"`
	Status         string      `db:"status"`
	ActionRequired bool        `db:"action_required"`
	ActionURL      *string     `db:"action_url"`
	CreatedAt      time.Time   `db:"created_at"`
}

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new notification repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

func (r *Repo) db(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.q)
}

// viewerScope builds the WHERE fragment selecting records visible to a
// viewer: direct recipient membership, plus broadcasts when the viewer is
// allowed to see them (manager role, decided by the caller).
func viewerScope(viewerID uuid.UUID, includeBroadcast bool) squirrel.Sqlizer {
	direct := squirrel.Expr("? = ANY(recipients)", viewerID)
	if !includeBroadcast {
		return direct
	}
	return squirrel.Or{
		squirrel.Expr("recipients = '{}'"),
		direct,
	}
}

// Create inserts a notification and returns the persisted record.
func (r *Repo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	recipients := n.Recipients
	if recipients == nil {
		recipients = []uuid.UUID{}
	}

	var relatedKind *string
	var relatedID *uuid.UUID
	if n.Related != nil {
		kind := n.Related.Kind.String()
		id := n.Related.ID
		relatedKind = &kind
		relatedID = &id
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns[:len(columns)-1]...).
		Values(
			n.ID, n.Type.String(), n.Title, n.Message, n.Priority.String(),
			relatedKind, relatedID, n.InitiatedBy, recipients,
			n.Status.String(), n.ActionRequired, n.ActionURL,
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, n.ID)
	}

	return toDomain(out), nil
}

// GetByID returns a notification by primary key.
// Returns domain.ErrNotFound if no such record exists.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
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

// ListForViewer returns notifications visible to the viewer, newest first,
// capped at limit.
func (r *Repo) ListForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool, limit int) ([]*domain.Notification, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(viewerScope(viewerID, includeBroadcast)).
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
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]*domain.Notification, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// CountUnreadForViewer returns the number of unread notifications visible to
// the viewer.
func (r *Repo) CountUnreadForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"status": domain.NotificationUnread.String()}).
		Where(viewerScope(viewerID, includeBroadcast)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := r.db(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead transitions one notification to read. The update is a no-op on an
// already-read record, which keeps the operation idempotent.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) MarkRead(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("status", domain.NotificationRead.String()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.db(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, table, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MarkAllRead transitions every unread notification visible to the viewer to
// read and returns the number of records affected. A second call affects zero.
func (r *Repo) MarkAllRead(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("status", domain.NotificationRead.String()).
		Where(squirrel.Eq{"status": domain.NotificationUnread.String()}).
		Where(viewerScope(viewerID, includeBroadcast)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.db(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Delete removes a notification. Returns domain.ErrNotFound if it does not exist.
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
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteAllForViewer removes every notification visible to the viewer and
// returns the number deleted. Idempotent: an empty feed is not an error.
func (r *Repo) DeleteAllForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error) {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(viewerScope(viewerID, includeBroadcast)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.db(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete all notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// toDomain converts a table row into a domain.Notification.
func toDomain(rw row) *domain.Notification {
	n := &domain.Notification{
		ID:             rw.ID,
		Type:           domain.NotificationType(rw.Type),
		Title:          rw.Title,
		Message:        rw.Message,
		Priority:       domain.Priority(rw.Priority),
		InitiatedBy:    rw.InitiatedBy,
		Recipients:     rw.Recipients,
		Status:         domain.NotificationStatus(rw.Status),
		ActionRequired: rw.ActionRequired,
		ActionURL:      rw.ActionURL,
		CreatedAt:      rw.CreatedAt,
	}
	if rw.RelatedKind != nil && rw.RelatedID != nil {
		n.Related = &domain.EntityRef{
			Kind: domain.EntityKind(*rw.RelatedKind),
			ID:   *rw.RelatedID,
		}
	}
	return n
}
