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
	"golang.org/x/crypto/bcrypt"

	"github.com/amezav/registro-academico-api/internal/models"
	appErrors "github.com/amezav/registro-academico-api/pkg/errors"
)

type mockCredentialRepo struct {
	credential *models.Credential
	taken      bool
	createErr  error
}

func (m *mockCredentialRepo) FindByEmail(ctx context.Context, email string) (*models.Credential, error) {
	if m.credential == nil {
		return nil, sql.ErrNoRows
	}
	return m.credential, nil
}

func (m *mockCredentialRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.taken, nil
}

func (m *mockCredentialRepo) Create(ctx context.Context, credential *models.Credential) error {
	if m.createErr != nil {
		return m.createErr
	}
	credential.ID = 1
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "secret", Expiration: time.Hour, Issuer: "registro-academico-api"}
}

func TestAuthServiceRegisterIssuesToken(t *testing.T) {
	repo := &mockCredentialRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Register(context.Background(), models.RegisterRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockCredentialRepo{taken: true}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "admin@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterShortPassword(t *testing.T) {
	repo := &mockCredentialRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "admin@example.com", Password: "abc"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	repo := &mockCredentialRepo{credential: &models.Credential{ID: 1, Email: "admin@example.com", PasswordHash: string(hash)}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	repo := &mockCredentialRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	repo := &mockCredentialRepo{credential: &models.Credential{ID: 1, Email: "admin@example.com", PasswordHash: string(hash)}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, 401, appErr.Status)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	repo := &mockCredentialRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	repo := &mockCredentialRepo{}
	issuer := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{Secret: "other", Expiration: time.Hour, Issuer: "x"})
	verifier := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := issuer.Register(context.Background(), models.RegisterRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(res.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
