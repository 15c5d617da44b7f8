package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// resolveManagers returns the ids of every manager-role user. An empty
// result is valid: it means there is nobody to notify, and the emitter
// skips the event instead of failing.
func (s *Service) resolveManagers(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.users.ListManagerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve managers: %w", err)
	}
	return ids, nil
}

// resolveSubmitterOf returns the id of the attendant who created the given
// stock submission. If the submission has been deleted in the meantime, the
// result is an empty recipient set, not an error: the weak reference is
// allowed to dangle.
func (s *Service) resolveSubmitterOf(ctx context.Context, submissionID uuid.UUID) ([]uuid.UUID, error) {
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve submitter of %s: %w", submissionID, err)
	}
	return []uuid.UUID{sub.SubmittedBy}, nil
}
