package notification

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockNotificationRepo struct {
	CreateFunc               func(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListForViewerFunc        func(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool, limit int) ([]*domain.Notification, error)
	CountUnreadForViewerFunc func(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error)
	MarkReadFunc             func(ctx context.Context, id uuid.UUID) error
	MarkAllReadFunc          func(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error)
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	DeleteAllForViewerFunc   func(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	return m.CreateFunc(ctx, n)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockNotificationRepo) ListForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool, limit int) ([]*domain.Notification, error) {
	return m.ListForViewerFunc(ctx, viewerID, includeBroadcast, limit)
}

func (m *mockNotificationRepo) CountUnreadForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error) {
	return m.CountUnreadForViewerFunc(ctx, viewerID, includeBroadcast)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	return m.MarkReadFunc(ctx, id)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error) {
	return m.MarkAllReadFunc(ctx, viewerID, includeBroadcast)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockNotificationRepo) DeleteAllForViewer(ctx context.Context, viewerID uuid.UUID, includeBroadcast bool) (int, error) {
	return m.DeleteAllForViewerFunc(ctx, viewerID, includeBroadcast)
}

type mockUserDirectory struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListManagerIDsFunc func(ctx context.Context) ([]uuid.UUID, error)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserDirectory) ListManagerIDs(ctx context.Context) ([]uuid.UUID, error) {
	return m.ListManagerIDsFunc(ctx)
}

type mockSubmissionSource struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.StockSubmission, error)
}

func (m *mockSubmissionSource) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockSubmission, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockStockSource struct {
	ListBelowQuantityFunc func(ctx context.Context, threshold int) ([]*domain.StockItem, error)
}

func (m *mockStockSource) ListBelowQuantity(ctx context.Context, threshold int) ([]*domain.StockItem, error) {
	return m.ListBelowQuantityFunc(ctx, threshold)
}

type mockPublisher struct {
	PublishFunc func(event string, payload any) error
}

func (m *mockPublisher) Publish(event string, payload any) error {
	return m.PublishFunc(event, payload)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// echoRepo returns a repo whose Create echoes the record back, the way the
// real repo does via RETURNING.
func echoRepo() *mockNotificationRepo {
	return &mockNotificationRepo{
		CreateFunc: func(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
			return n, nil
		},
	}
}

func managersOf(ids ...uuid.UUID) *mockUserDirectory {
	return &mockUserDirectory{
		ListManagerIDsFunc: func(_ context.Context) ([]uuid.UUID, error) {
			return ids, nil
		},
	}
}

func viewerDirectory(u *domain.User) *mockUserDirectory {
	return &mockUserDirectory{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			return u, nil
		},
	}
}

func newTestService(
	repo *mockNotificationRepo,
	users *mockUserDirectory,
	submissions *mockSubmissionSource,
	stock *mockStockSource,
	pub *mockPublisher,
) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var p publisher
	if pub != nil {
		p = pub
	}
	return NewService(logger, repo, users, submissions, stock, p, 0)
}

func validStockSubmittedInput() StockSubmittedInput {
	return StockSubmittedInput{
		SubmissionID:  uuid.New(),
		AttendantID:   uuid.New(),
		AttendantName: "Achieng",
		ProductName:   "Mahogany Table",
		Quantity:      5,
	}
}

func validSaleInput() SaleInput {
	return SaleInput{
		SaleID:        uuid.New(),
		AttendantID:   uuid.New(),
		AttendantName: "Otieno",
		CustomerName:  "Wanjiku",
		Amount:        450.50,
	}
}
