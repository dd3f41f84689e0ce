package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amezav/registro-academico-api/internal/models"
	"github.com/amezav/registro-academico-api/internal/service"
)

type credentialRepoStub struct{}

func (s *credentialRepoStub) FindByEmail(ctx context.Context, email string) (*models.Credential, error) {
	return nil, sql.ErrNoRows
}

func (s *credentialRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (s *credentialRepoStub) Create(ctx context.Context, credential *models.Credential) error {
	credential.ID = 1
	return nil
}

func newTestRouter(authService *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(authService), func(c *gin.Context) {
		claims, ok := c.Get(ContextUserKey)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.(*models.JWTClaims).Email})
	})
	return r
}

func TestJWTMissingHeader(t *testing.T) {
	authService := service.NewAuthService(&credentialRepoStub{}, nil, zap.NewNop(), service.AuthConfig{Secret: "secret", Expiration: time.Hour})
	r := newTestRouter(authService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMalformedHeader(t *testing.T) {
	authService := service.NewAuthService(&credentialRepoStub{}, nil, zap.NewNop(), service.AuthConfig{Secret: "secret", Expiration: time.Hour})
	r := newTestRouter(authService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTValidToken(t *testing.T) {
	authService := service.NewAuthService(&credentialRepoStub{}, nil, zap.NewNop(), service.AuthConfig{Secret: "secret", Expiration: time.Hour})
	res, err := authService.Register(context.Background(), models.RegisterRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)

	r := newTestRouter(authService)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
}

func TestJWTExpiredToken(t *testing.T) {
	issuer := service.NewAuthService(&credentialRepoStub{}, nil, zap.NewNop(), service.AuthConfig{Secret: "secret", Expiration: -time.Minute})
	res, err := issuer.Register(context.Background(), models.RegisterRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)

	verifier := service.NewAuthService(&credentialRepoStub{}, nil, zap.NewNop(), service.AuthConfig{Secret: "secret", Expiration: time.Hour})
	r := newTestRouter(verifier)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
