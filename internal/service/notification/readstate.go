package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// ListForViewer returns the viewer's feed, newest first. Managers also see
// broadcast records (empty recipient set); attendants never do. A limit of 0
// or less falls back to DefaultListLimit.
func (s *Service) ListForViewer(ctx context.Context, viewerID uuid.UUID, limit int) ([]*domain.Notification, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get viewer %s: %w", viewerID, err)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	list, err := s.notifications.ListForViewer(ctx, viewerID, viewer.Role.IsManager(), limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications for %s: %w", viewerID, err)
	}
	return list, nil
}

// UnreadCountForViewer returns how many visible notifications the viewer has
// not read yet.
func (s *Service) UnreadCountForViewer(ctx context.Context, viewerID uuid.UUID) (int, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return 0, fmt.Errorf("get viewer %s: %w", viewerID, err)
	}

	count, err := s.notifications.CountUnreadForViewer(ctx, viewerID, viewer.Role.IsManager())
	if err != nil {
		return 0, fmt.Errorf("count unread for %s: %w", viewerID, err)
	}
	return count, nil
}

// MarkRead transitions a notification to read on behalf of the viewer. The
// transition is one-way and idempotent: marking an already-read record
// succeeds without effect. A viewer the record is not visible to (not a
// recipient; broadcasts for non-managers) gets domain.ErrForbidden.
func (s *Service) MarkRead(ctx context.Context, viewerID, id uuid.UUID) error {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return fmt.Errorf("get viewer %s: %w", viewerID, err)
	}

	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get notification %s: %w", id, err)
	}

	if !n.VisibleTo(viewerID, viewer.Role) {
		return fmt.Errorf("notification %s: %w", id, domain.ErrForbidden)
	}

	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark read %s: %w", id, err)
	}
	return nil
}

// MarkAllRead marks every unread notification visible to the viewer as read
// and returns how many records changed.
func (s *Service) MarkAllRead(ctx context.Context, viewerID uuid.UUID) (int, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return 0, fmt.Errorf("get viewer %s: %w", viewerID, err)
	}

	n, err := s.notifications.MarkAllRead(ctx, viewerID, viewer.Role.IsManager())
	if err != nil {
		return 0, fmt.Errorf("mark all read for %s: %w", viewerID, err)
	}

	s.log.InfoContext(ctx, "notifications marked read",
		slog.String("viewer_id", viewerID.String()),
		slog.Int("count", n),
	)
	return n, nil
}

// Remove deletes a single notification on behalf of the viewer. The same
// visibility rule as MarkRead applies.
func (s *Service) Remove(ctx context.Context, viewerID, id uuid.UUID) error {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return fmt.Errorf("get viewer %s: %w", viewerID, err)
	}

	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get notification %s: %w", id, err)
	}

	if !n.VisibleTo(viewerID, viewer.Role) {
		return fmt.Errorf("notification %s: %w", id, domain.ErrForbidden)
	}

	if err := s.notifications.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete notification %s: %w", id, err)
	}
	return nil
}

// ClearAllForViewer deletes every notification visible to the viewer and
// returns how many records went away.
func (s *Service) ClearAllForViewer(ctx context.Context, viewerID uuid.UUID) (int, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return 0, fmt.Errorf("get viewer %s: %w", viewerID, err)
	}

	n, err := s.notifications.DeleteAllForViewer(ctx, viewerID, viewer.Role.IsManager())
	if err != nil {
		return 0, fmt.Errorf("clear notifications for %s: %w", viewerID, err)
	}

	s.log.InfoContext(ctx, "notifications cleared",
		slog.String("viewer_id", viewerID.String()),
		slog.Int("count", n),
	)
	return n, nil
}
