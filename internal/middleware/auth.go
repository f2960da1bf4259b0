package middleware

import (
	"net/http"

	"github.com/danielotieno/ledgerbook/internal/auth"
	"github.com/danielotieno/ledgerbook/internal/handler"
)

// Auth authenticates API requests: valid token or a 401. Role checks are
// separate; see RequireAdmin.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			ctx := auth.ContextWithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
