package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Name:         "Test User " + suffix,
		Role:         role,
		PasswordHash: "$2a$04$test-hash-" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, string(user.Role), user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedStockItem creates a stock item with the given quantity.
// Returns a filled domain.StockItem.
func SeedStockItem(t *testing.T, pool *pgxpool.Pool, quantity int, unitPrice float64) domain.StockItem {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.StockItem{
		ID:          uuid.New(),
		ProductName: "Test Product " + suffix,
		Category:    "furniture",
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO stock_items (id, product_name, category, quantity, unit_price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.ProductName, item.Category, item.Quantity, item.UnitPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStockItem insert: %v", err)
	}

	return item
}

// SeedSubmission creates a pending stock submission from the given user.
// Returns a filled domain.StockSubmission.
func SeedSubmission(t *testing.T, pool *pgxpool.Pool, submittedBy uuid.UUID) domain.StockSubmission {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	sub := domain.StockSubmission{
		ID:          uuid.New(),
		ProductName: "Submitted Product " + suffix,
		Quantity:    25,
		UnitPrice:   150,
		SubmittedBy: submittedBy,
		Status:      domain.SubmissionPending,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO stock_submissions (id, product_name, quantity, unit_price, submitted_by, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.ProductName, sub.Quantity, sub.UnitPrice, sub.SubmittedBy, string(sub.Status), sub.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission insert: %v", err)
	}

	return sub
}

// SeedNotification creates an unread notification addressed to the given
// recipients; pass none for a broadcast record. Returns a filled
// domain.Notification.
func SeedNotification(t *testing.T, pool *pgxpool.Pool, typ domain.NotificationType, recipients ...uuid.UUID) domain.Notification {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	if recipients == nil {
		recipients = []uuid.UUID{}
	}
	n := domain.Notification{
		ID:         uuid.New(),
		Type:       typ,
		Title:      "Test Notification " + suffix,
		Message:    "Test message " + suffix,
		Priority:   domain.PriorityMedium,
		Recipients: recipients,
		Status:     domain.NotificationUnread,
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notifications (id, type, title, message, priority, recipients, status, action_required, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, string(n.Type), n.Title, n.Message, string(n.Priority), n.Recipients, string(n.Status), n.ActionRequired, n.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNotification insert: %v", err)
	}

	return n
}

// SeedTask creates an open task assigned to the given user.
// Returns a filled domain.Task.
func SeedTask(t *testing.T, pool *pgxpool.Pool, assignedTo uuid.UUID) domain.Task {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	task := domain.Task{
		ID:          uuid.New(),
		Type:        "loading",
		Description: "Test task " + suffix,
		AssignedTo:  assignedTo,
		Status:      domain.TaskOpen,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tasks (id, type, description, assigned_to, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		task.ID, task.Type, task.Description, task.AssignedTo, string(task.Status), task.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTask insert: %v", err)
	}

	return task
}
