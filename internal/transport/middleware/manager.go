package middleware

import (
	"context"

	"github.com/okothnm/woodline-backend/internal/domain"
	"github.com/okothnm/woodline-backend/pkg/ctxutil"
)

// RequireManager returns domain.ErrForbidden unless the context user carries
// the manager role. Use in REST handlers, not as HTTP middleware.
func RequireManager(ctx context.Context) error {
	role, ok := ctxutil.RoleFromCtx(ctx)
	if !ok || !domain.Role(role).IsManager() {
		return domain.ErrForbidden
	}
	return nil
}
