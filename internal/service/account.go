package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/logging"
)

type AccountService struct {
	users      userRepository
	inviteCode string
}

// NewAccountService wires the account operations. inviteCode may be empty,
// which leaves signup open.
func NewAccountService(users userRepository, inviteCode string) *AccountService {
	return &AccountService{users: users, inviteCode: inviteCode}
}

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	InviteCode  string
}

// Register creates a new account with role "user" and a zero balance.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	log := logging.FromContext(ctx)

	if s.inviteCode != "" {
		if subtle.ConstantTimeCompare([]byte(req.InviteCode), []byte(s.inviteCode)) != 1 {
			return nil, fmt.Errorf("Register: %w", domain.ErrInvalidInviteCode)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Balance:      decimal.Zero,
		RegisteredAt: time.Now().UTC(),
	}
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		user.DisplayName = &name
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks credentials. The error shape is identical whether the
// email is unknown or the password wrong.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Authenticate: %w", domain.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("Authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("Authenticate: %w", domain.ErrInvalidCredentials)
	}

	return user, nil
}

// ChangeRole assigns a new role. An admin may not demote their own account;
// the self check runs before any store call.
func (s *AccountService) ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, role domain.Role) error {
	log := logging.FromContext(ctx)

	if !role.IsValid() {
		return fmt.Errorf("ChangeRole: %w", domain.ErrInvalidRole)
	}
	if actorID == targetID {
		return fmt.Errorf("ChangeRole: %w", domain.ErrSelfAction)
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("ChangeRole: %w", err)
	}

	log.Info("role changed", "target_id", targetID, "role", role, "actor_id", actorID)
	return nil
}

// DeleteAccount removes the account record and, through the store's cascading
// delete, its subordinate entries. Self-deletion is rejected before any store
// call.
func (s *AccountService) DeleteAccount(ctx context.Context, actorID, targetID uuid.UUID) error {
	log := logging.FromContext(ctx)

	if actorID == targetID {
		return fmt.Errorf("DeleteAccount: %w", domain.ErrSelfAction)
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}

	log.Info("account deleted", "target_id", targetID, "actor_id", actorID)
	return nil
}

// RequestPasswordReset never reveals whether the email exists: the caller
// always reports the same generic message.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) {
	log := logging.FromContext(ctx)

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error("password reset lookup failed", "error", err)
		}
		return
	}

	// Mail delivery is out of scope; the token only ever reaches debug logs.
	log.Debug("password reset token issued", "user_id", user.ID, "token", uuid.NewString())
}
