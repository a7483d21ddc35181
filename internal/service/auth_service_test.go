package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
)

type mockCredentialRepo struct {
	cred *models.AdminCredential
}

func (m *mockCredentialRepo) Get(ctx context.Context) (*models.AdminCredential, error) {
	if m.cred == nil {
		return nil, sql.ErrNoRows
	}
	cp := *m.cred
	return &cp, nil
}

func (m *mockCredentialRepo) Save(ctx context.Context, cred *models.AdminCredential) error {
	cp := *cred
	m.cred = &cp
	return nil
}

func newAuthService(repo credentialRepository) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
	})
}

func TestAuthNeedsSetup(t *testing.T) {
	service := newAuthService(&mockCredentialRepo{})

	needed, err := service.NeedsSetup(context.Background())
	require.NoError(t, err)
	assert.True(t, needed)
}

func TestAuthSetupAndLogin(t *testing.T) {
	repo := &mockCredentialRepo{}
	service := newAuthService(repo)

	err := service.Setup(context.Background(), models.SetupRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, repo.cred)
	assert.NotEqual(t, "secret", repo.cred.PasswordHash, "password is stored hashed")

	needed, err := service.NeedsSetup(context.Background())
	require.NoError(t, err)
	assert.False(t, needed)

	resp, err := service.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthSetupRefusesOverwrite(t *testing.T) {
	repo := &mockCredentialRepo{}
	service := newAuthService(repo)

	require.NoError(t, service.Setup(context.Background(), models.SetupRequest{Username: "admin", Password: "secret"}))
	err := service.Setup(context.Background(), models.SetupRequest{Username: "other", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, "admin", repo.cred.Username)
}

func TestAuthSetupValidation(t *testing.T) {
	service := newAuthService(&mockCredentialRepo{})

	err := service.Setup(context.Background(), models.SetupRequest{Username: "ab", Password: "secret"})
	require.Error(t, err)

	err = service.Setup(context.Background(), models.SetupRequest{Username: "admin", Password: "abc"})
	require.Error(t, err)
}

func TestAuthLoginCaseInsensitiveUsername(t *testing.T) {
	service := newAuthService(&mockCredentialRepo{})
	require.NoError(t, service.Setup(context.Background(), models.SetupRequest{Username: "Admin", Password: "secret"}))

	_, err := service.Login(context.Background(), models.LoginRequest{Username: "ADMIN", Password: "secret"})
	require.NoError(t, err)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	service := newAuthService(&mockCredentialRepo{})
	require.NoError(t, service.Setup(context.Background(), models.SetupRequest{Username: "admin", Password: "secret"}))

	_, err := service.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "SECRET"})
	require.Error(t, err)
}

func TestAuthLoginWithoutSetup(t *testing.T) {
	service := newAuthService(&mockCredentialRepo{})

	_, err := service.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret"})
	require.Error(t, err)
}

func TestAuthValidateTokenRejectsForeignSecret(t *testing.T) {
	issuer := newAuthService(&mockCredentialRepo{})
	require.NoError(t, issuer.Setup(context.Background(), models.SetupRequest{Username: "admin", Password: "secret"}))
	resp, err := issuer.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	verifier := NewAuthService(&mockCredentialRepo{}, validator.New(), zap.NewNop(), AuthConfig{Secret: "other-secret"})
	_, err = verifier.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}

func TestAuthValidateTokenGarbage(t *testing.T) {
	service := newAuthService(&mockCredentialRepo{})

	_, err := service.ValidateToken("not-a-token")
	require.Error(t, err)
}
