package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielotieno/ledgerbook/internal/auth"
	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/service"
)

type accountService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string)
}

type AuthHandler struct {
	accounts  accountService
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthHandler(accounts accountService, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

type userDTO struct {
	ID           uuid.UUID       `json:"id"`
	Email        string          `json:"email"`
	DisplayName  *string         `json:"display_name"`
	Role         domain.Role     `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
	RegisteredAt time.Time       `json:"registered_at"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Role:         u.Role,
		Balance:      u.Balance,
		RegisteredAt: u.RegisteredAt,
	}
}

type sessionResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	InviteCode  string `json:"invite_code"`
}

func (r signupRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	return errs
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	user, err := h.accounts.Register(r.Context(), service.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		InviteCode:  req.InviteCode,
	})
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	h.respondWithSession(w, user, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	h.respondWithSession(w, user, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword reports the same message whether or not the email exists, to
// avoid account enumeration.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	h.accounts.RequestPasswordReset(r.Context(), req.Email)

	RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "If an account with this email exists, a password reset link has been sent.",
	})
}

func (h *AuthHandler) respondWithSession(w http.ResponseWriter, user *domain.User, status int) {
	token, err := auth.GenerateToken(user.ID, user.Email, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	RespondSuccess(w, status, sessionResponse{
		Token: token,
		User:  toUserDTO(user),
	})
}
