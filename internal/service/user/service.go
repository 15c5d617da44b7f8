// Package user implements registration, login and staff lookups against the
// canonical user registry.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/okothnm/woodline-backend/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, role domain.Role) (string, error)
}

// AuthResult is a successful registration or login.
type AuthResult struct {
	User        *domain.User
	AccessToken string
}

// Service provides registration, login and staff lookups.
type Service struct {
	users    userRepo
	tokens   tokenIssuer
	hashCost int
	log      *slog.Logger
}

// NewService creates a user service. hashCost of 0 falls back to the bcrypt
// default.
func NewService(log *slog.Logger, users userRepo, tokens tokenIssuer, hashCost int) *Service {
	if hashCost <= 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Service{
		users:    users,
		tokens:   tokens,
		hashCost: hashCost,
		log:      log.With("service", "user"),
	}
}

// Register creates a staff account and issues an access token.
// Returns domain.ErrAlreadyExists if the email is taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(created.ID, created.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.Role.String()),
	)

	return &AuthResult{User: created, AccessToken: token}, nil
}

// Login authenticates with email + password.
// Returns domain.ErrUnauthorized if the email is unknown or the password is
// wrong; the two cases are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := in.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", u.ID.String()))

	return &AuthResult{User: u, AccessToken: token}, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
