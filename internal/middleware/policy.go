package middleware

import (
	"errors"
	"net/http"

	"github.com/danielotieno/ledgerbook/internal/auth"
	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/logging"
	"github.com/danielotieno/ledgerbook/internal/policy"
)

// PagePolicy gates page navigation through the access policy engine. The
// middleware resolves the principal and role before the engine runs, which is
// the server-side analogue of awaiting the identity and role lookups: a
// pending decision can never escape here.
//
// Resolution rules: no or invalid token means anonymous; a principal whose
// account record is gone is treated as anonymous; a role lookup failure
// yields an empty role, never admin.
func PagePolicy(secret string, users roleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := resolvePrincipal(r, secret, users)

			decision := policy.Decide(principal, r.URL.Path)
			switch decision.Action {
			case policy.ActionAllow:
				next.ServeHTTP(w, r)
			case policy.ActionRedirect:
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			default:
				// Unreachable: resolution is synchronous. Refusing to serve is
				// still safer than allowing.
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			}
		})
	}
}

func resolvePrincipal(r *http.Request, secret string, users roleResolver) *policy.Principal {
	token := auth.TokenFromRequest(r)
	if token == "" {
		return nil
	}

	claims, err := auth.ValidateToken(token, secret)
	if err != nil {
		return nil
	}

	user, err := users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Token for a deleted account: anonymous.
			return nil
		}
		logging.FromContext(r.Context()).Warn("role lookup failed", "error", err, "user_id", claims.UserID)
		return &policy.Principal{UID: claims.UserID, Role: ""}
	}

	return &policy.Principal{UID: user.ID, Role: user.Role}
}
