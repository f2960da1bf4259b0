package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielotieno/ledgerbook/internal/auth"
	"github.com/danielotieno/ledgerbook/internal/domain"
)

type roleChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// ownerOrAdmin resolves the {id} path segment and allows it when the caller
// is the owner or holds the admin role. Denials look like a missing resource
// so existence is never leaked.
func ownerOrAdmin(r *http.Request, users roleChecker) (uuid.UUID, *AppError) {
	authUserID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, ErrMissingToken
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, ErrResourceNotFound
	}

	if targetID == authUserID {
		return targetID, nil
	}

	actor, err := users.GetByID(r.Context(), authUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, ErrInternalError
	}
	if actor.Role != domain.RoleAdmin {
		return uuid.Nil, ErrResourceNotFound
	}

	return targetID, nil
}
