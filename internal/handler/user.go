package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielotieno/ledgerbook/internal/auth"
	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/logging"
)

type userLister interface {
	roleChecker
	List(ctx context.Context) ([]domain.User, error)
}

type accountAdmin interface {
	ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, role domain.Role) error
	DeleteAccount(ctx context.Context, actorID, targetID uuid.UUID) error
}

type UserHandler struct {
	users    userLister
	accounts accountAdmin
}

func NewUserHandler(users userLister, accounts accountAdmin) *UserHandler {
	return &UserHandler{users: users, accounts: accounts}
}

// List returns every account. Admin-gated at the route.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list users", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]userDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, toUserDTO(&users[i]))
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	targetID, appErr := ownerOrAdmin(r, h.users)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	user, err := h.users.GetByID(r.Context(), targetID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get user", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toUserDTO(user))
}

type changeRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if err := h.accounts.ChangeRole(r.Context(), actorID, targetID, req.Role); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"id":   targetID,
		"role": req.Role,
	})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), actorID, targetID); err != nil {
		RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
