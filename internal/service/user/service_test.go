package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/okothnm/woodline-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	CreateFunc     func(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

type mockTokenIssuer struct {
	GenerateAccessTokenFunc func(userID uuid.UUID, role domain.Role) (string, error)
}

func (m *mockTokenIssuer) GenerateAccessToken(userID uuid.UUID, role domain.Role) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	return "token", nil
}

func newTestService(repo *mockUserRepo, tokens *mockTokenIssuer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if tokens == nil {
		tokens = &mockTokenIssuer{}
	}
	return NewService(logger, repo, tokens, bcrypt.MinCost)
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestService_Register_HashesPasswordAndIssuesToken(t *testing.T) {
	t.Parallel()

	var created *domain.User
	repo := &mockUserRepo{
		CreateFunc: func(_ context.Context, u *domain.User) (*domain.User, error) {
			created = u
			return u, nil
		},
	}
	tokens := &mockTokenIssuer{
		GenerateAccessTokenFunc: func(userID uuid.UUID, role domain.Role) (string, error) {
			assert.Equal(t, domain.RoleAttendant, role)
			return "signed-token", nil
		},
	}

	svc := newTestService(repo, tokens)
	out, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Otieno@Example.com ",
		Name:     " Otieno ",
		Password: "correct horse",
		Role:     domain.RoleAttendant,
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.AccessToken)
	assert.Equal(t, "otieno@example.com", created.Email, "email is normalized")
	assert.Equal(t, "Otieno", created.Name)
	assert.NotEqual(t, "correct horse", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct horse")))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		CreateFunc: func(_ context.Context, _ *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	svc := newTestService(repo, nil)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "njeri@example.com",
		Name:     "Njeri",
		Password: "long enough",
		Role:     domain.RoleManager,
	})

	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestService_Register_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockUserRepo{}, nil)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Password: "short",
		Role:     domain.Role("boss"),
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 4)
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{
		ID:           uuid.New(),
		Email:        "otieno@example.com",
		Name:         "Otieno",
		Role:         domain.RoleAttendant,
		PasswordHash: string(hash),
	}
	repo := &mockUserRepo{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "otieno@example.com", email)
			return u, nil
		},
	}

	svc := newTestService(repo, nil)
	out, err := svc.Login(context.Background(), LoginInput{
		Email:    " Otieno@Example.com",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, u.ID, out.User.ID)
	assert.NotEmpty(t, out.AccessToken)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockUserRepo{
		GetByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), PasswordHash: string(hash)}, nil
		},
	}

	svc := newTestService(repo, nil)
	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "otieno@example.com",
		Password: "wrong",
	})

	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		GetByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(repo, nil)
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	require.ErrorIs(t, err, domain.ErrUnauthorized, "unknown email and wrong password are indistinguishable")
}
