package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/internal/service/notification"
)

// Approve accepts a pending submission and moves its quantity into the store
// inventory. The decision and the inventory update commit atomically; the
// notification to the submitter goes out only after the commit.
//
// Deciding a submission that is not pending returns domain.ErrNotFound.
func (s *Service) Approve(ctx context.Context, in DecideInput) (*domain.StockSubmission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	manager, err := s.users.GetByID(ctx, in.DecidedBy)
	if err != nil {
		return nil, fmt.Errorf("get manager %s: %w", in.DecidedBy, err)
	}
	if !manager.Role.IsManager() {
		return nil, fmt.Errorf("user %s is not a manager: %w", manager.ID, domain.ErrForbidden)
	}

	var decided *domain.StockSubmission
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		decided, txErr = s.submissions.Decide(ctx, in.SubmissionID, domain.SubmissionApproved, manager.ID, time.Now())
		if txErr != nil {
			return fmt.Errorf("decide submission %s: %w", in.SubmissionID, txErr)
		}
		if _, err := s.stock.AddQuantity(ctx, decided.ProductName, decided.Quantity, decided.UnitPrice); err != nil {
			return fmt.Errorf("add stock quantity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.notifier.EmitStockApproved(ctx, notification.StockDecisionInput{
		SubmissionID: decided.ID,
		ManagerID:    manager.ID,
		ManagerName:  manager.Name,
		ProductName:  decided.ProductName,
		Quantity:     decided.Quantity,
	}); err != nil {
		s.logEmitFailure(ctx, "stock_approved", err)
	}

	return decided, nil
}

// Reject declines a pending submission. No inventory changes.
func (s *Service) Reject(ctx context.Context, in DecideInput) (*domain.StockSubmission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	manager, err := s.users.GetByID(ctx, in.DecidedBy)
	if err != nil {
		return nil, fmt.Errorf("get manager %s: %w", in.DecidedBy, err)
	}
	if !manager.Role.IsManager() {
		return nil, fmt.Errorf("user %s is not a manager: %w", manager.ID, domain.ErrForbidden)
	}

	decided, err := s.submissions.Decide(ctx, in.SubmissionID, domain.SubmissionRejected, manager.ID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("decide submission %s: %w", in.SubmissionID, err)
	}

	if _, err := s.notifier.EmitStockRejected(ctx, notification.StockDecisionInput{
		SubmissionID: decided.ID,
		ManagerID:    manager.ID,
		ManagerName:  manager.Name,
		ProductName:  decided.ProductName,
		Quantity:     decided.Quantity,
	}); err != nil {
		s.logEmitFailure(ctx, "stock_rejected", err)
	}

	return decided, nil
}
