package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stride-store/models"
	"stride-store/repository"
)

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret")

	reg, err := svc.Register(ctx, &models.RegisterRequest{
		Name:     "  João Souza ",
		Email:    "joao@example.com",
		Password: "s3nha-forte",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "João Souza", reg.User.Name)
	assert.NotEmpty(t, reg.User.ID)

	// The stored hash is never the raw password.
	stored, err := users.GetByEmail(ctx, "joao@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nha-forte", stored.PasswordHash)

	login, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "joao@example.com",
		Password: "s3nha-forte",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	claims, err := svc.VerifyToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	req := &models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "segredo1"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.Register(ctx, &models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "segredo1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ana@example.com", Password: "errada"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsForgedToken(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	issuer := NewAuthService(users, "secret-a")
	verifier := NewAuthService(users, "secret-b")

	reg, err := issuer.Register(ctx, &models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "segredo1"})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(reg.Token)
	assert.Error(t, err)

	_, err = verifier.VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestEnsureAdminCreatesAccount(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret")

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "s3nha-admin"))

	login, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "s3nha-admin"})
	require.NoError(t, err)
	assert.True(t, login.User.IsAdmin)

	claims, err := svc.VerifyToken(login.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestEnsureAdminPromotesExistingAccount(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret")

	reg, err := svc.Register(ctx, &models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "segredo1"})
	require.NoError(t, err)
	assert.False(t, reg.User.IsAdmin)

	require.NoError(t, svc.EnsureAdmin(ctx, "ana@example.com", "nova-senha"))

	// Same account, now admin with the bootstrap password.
	login, err := svc.Login(ctx, &models.LoginRequest{Email: "ana@example.com", Password: "nova-senha"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.True(t, login.User.IsAdmin)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ana@example.com", Password: "segredo1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret")

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "s3nha-admin"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "s3nha-admin"))

	assert.Len(t, users.users, 1)
}

func TestVerifyTokenCarriesAdminFlag(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	token, err := svc.issueToken(&models.User{ID: "admin-1", IsAdmin: true})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin-1", claims.UserID)
}
