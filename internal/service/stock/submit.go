package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/notification"
)

// Submit records an attendant's stock addition as a pending submission and
// notifies the managers. The submission is durable before any notification is
// attempted.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.StockSubmission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	submitter, err := s.users.GetByID(ctx, in.SubmittedBy)
	if err != nil {
		return nil, fmt.Errorf("get submitter %s: %w", in.SubmittedBy, err)
	}

	created, err := s.submissions.Create(ctx, &domain.StockSubmission{
		ID:          uuid.New(),
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		SubmittedBy: submitter.ID,
		Status:      domain.SubmissionPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	if _, err := s.notifier.EmitStockSubmitted(ctx, notification.StockSubmittedInput{
		SubmissionID:  created.ID,
		AttendantID:   submitter.ID,
		AttendantName: submitter.Name,
		ProductName:   created.ProductName,
		Quantity:      created.Quantity,
	}); err != nil {
		s.logEmitFailure(ctx, "stock_submitted", err)
	}

	return created, nil
}
