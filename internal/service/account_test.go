package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielotieno/ledgerbook/internal/domain"
	"github.com/danielotieno/ledgerbook/internal/repository"
	"github.com/danielotieno/ledgerbook/internal/service"
	"github.com/danielotieno/ledgerbook/internal/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewUserRepository(db), "")
	ctx := context.Background()

	u, err := svc.Register(ctx, service.RegisterRequest{
		Email:       "New.User@Test.com",
		Password:    "password123",
		DisplayName: "New User",
	})

	require.NoError(t, err)
	assert.Equal(t, "new.user@test.com", u.Email, "email normalized")
	assert.Equal(t, domain.RoleUser, u.Role, "new accounts start as user")
	assert.True(t, u.Balance.IsZero(), "new accounts start at zero balance")
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "New User", *u.DisplayName)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.False(t, u.RegisteredAt.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewUserRepository(db), "")
	ctx := context.Background()

	testutil.SeedUser(t, db, "taken@test.com", domain.RoleUser, "0")

	_, err := svc.Register(ctx, service.RegisterRequest{
		Email:    "taken@test.com",
		Password: "password123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegister_InviteCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		configured string
		supplied   string
		wantErr    error
	}{
		{name: "open signup ignores code", configured: "", supplied: ""},
		{name: "matching code", configured: "welcome-2026", supplied: "welcome-2026"},
		{name: "wrong code", configured: "welcome-2026", supplied: "nope", wantErr: domain.ErrInvalidInviteCode},
		{name: "missing code", configured: "welcome-2026", supplied: "", wantErr: domain.ErrInvalidInviteCode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewAccountService(repository.NewUserRepository(db), tc.configured)
			_, err := svc.Register(ctx, service.RegisterRequest{
				Email:      uuid.NewString() + "@test.com",
				Password:   "password123",
				InviteCode: tc.supplied,
			})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAccountService(repository.NewUserRepository(db), "")
	ctx := context.Background()

	u := testutil.SeedUser(t, db, "login@test.com", domain.RoleUser, "0")

	got, err := svc.Authenticate(ctx, "login@test.com", testutil.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// Unknown email and wrong password produce the same error.
	_, errUnknown := svc.Authenticate(ctx, "nobody@test.com", testutil.TestPassword)
	_, errWrongPw := svc.Authenticate(ctx, "login@test.com", "wrong-password")
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, domain.ErrInvalidCredentials)
}

func TestChangeRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := service.NewAccountService(repo, "")
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin@test.com", domain.RoleAdmin, "0")
	target := testutil.SeedUser(t, db, "member@test.com", domain.RoleUser, "0")

	require.NoError(t, svc.ChangeRole(ctx, admin.ID, target.ID, domain.RoleAdmin))

	got, err := repo.GetByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestChangeRole_Rejections(t *testing.T) {
	// Both guards fire before any store call.
	svc := service.NewAccountService(nil, "")
	ctx := context.Background()
	admin := uuid.New()

	err := svc.ChangeRole(ctx, admin, admin, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrSelfAction)

	err = svc.ChangeRole(ctx, admin, uuid.New(), "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestDeleteAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := service.NewAccountService(repo, "")
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin@test.com", domain.RoleAdmin, "0")
	target := testutil.SeedUser(t, db, "doomed@test.com", domain.RoleUser, "10.00")
	testutil.SeedTransaction(t, db, target.ID, domain.EntryKindCredit, "10.00", "initial", target.RegisteredAt)

	require.NoError(t, svc.DeleteAccount(ctx, admin.ID, target.ID))

	_, err := repo.GetByID(ctx, target.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, testutil.CountTransactions(t, db, target.ID), "entries go with the account")
}

func TestDeleteAccount_SelfRejected(t *testing.T) {
	svc := service.NewAccountService(nil, "")
	admin := uuid.New()

	err := svc.DeleteAccount(context.Background(), admin, admin)
	assert.ErrorIs(t, err, domain.ErrSelfAction)
}
