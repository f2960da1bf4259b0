package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielotieno/ledgerbook/internal/auth"
	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/handler"
	"github.com/danielotieno/ledgerbook/internal/logging"
)

type roleResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// RequireAdmin gates API routes on the admin role. The role is resolved from
// the store on every request rather than trusted from the token, so a
// demotion takes effect immediately. A failed lookup is treated as non-admin.
func RequireAdmin(users roleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := auth.UserIDFromContext(r.Context())
			if !ok {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logging.FromContext(r.Context()).Warn("role lookup failed", "error", err, "user_id", userID)
				handler.RespondAppError(w, handler.ErrForbidden, nil)
				return
			}
			if user.Role != domain.RoleAdmin {
				handler.RespondAppError(w, handler.ErrForbidden, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
