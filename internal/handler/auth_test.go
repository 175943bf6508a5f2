package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/apierror"
	"github.com/martinmorag/manejo-de-empresas/internal/config"
	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/middleware"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────

type stubUsuarioRepo struct {
	users map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.users[u.ID] = u
	return nil
}

type stubLoginAttemptRepo struct {
	attempts []model.LoginAttempt
}

func (r *stubLoginAttemptRepo) Create(_ context.Context, a *model.LoginAttempt) error {
	a.ID = uuid.New()
	r.attempts = append(r.attempts, *a)
	return nil
}

func (r *stubLoginAttemptRepo) CountRecentFailures(_ context.Context, usuarioID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	for _, a := range r.attempts {
		if a.UsuarioID == usuarioID && !a.Success && !a.AttemptedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		MaxLoginAttempts:   15,
		LockWindowMinutes:  1,
	}
}

func seedUser(t *testing.T, repo *stubUsuarioRepo, email, password string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	negocioID := uuid.New()
	u := &model.Usuario{
		ID:        uuid.New(),
		Name:      "Test",
		Lastname:  "Usuario",
		Email:     email,
		Password:  string(hash),
		NegocioID: &negocioID,
	}
	repo.users[u.ID] = u
	return u
}

func signToken(t *testing.T, userID, email string, dur time.Duration) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(dur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func loginRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(svc)
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.Refresh)
	return r
}

func doLogin(t *testing.T, r *gin.Engine, body dto.LoginRequest, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

// ── Tests: Login ──────────────────────────────────────────────────────────────

func TestLoginEndpoint_Success(t *testing.T) {
	users := newStubUsuarioRepo()
	seedUser(t, users, "ana@test.com", "clave1234")
	svc := service.NewAuthService(users, &stubLoginAttemptRepo{}, nil, newTestCfg())
	r := loginRouter(svc)

	w := doLogin(t, r, dto.LoginRequest{Email: "ana@test.com", Password: "clave1234"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ana@test.com", resp.User.Email)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	users := newStubUsuarioRepo()
	seedUser(t, users, "ana@test.com", "clave1234")
	svc := service.NewAuthService(users, &stubLoginAttemptRepo{}, nil, newTestCfg())
	r := loginRouter(svc)

	w := doLogin(t, r, dto.LoginRequest{Email: "ana@test.com", Password: "otraclave"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Contraseña inválida", resp.Message)
}

func TestLoginEndpoint_ValidationErrorShape(t *testing.T) {
	svc := service.NewAuthService(newStubUsuarioRepo(), &stubLoginAttemptRepo{}, nil, newTestCfg())
	r := loginRouter(svc)

	w := doLogin(t, r, dto.LoginRequest{Email: "no-es-un-email", Password: "123"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error de validación", resp.Message)
	require.Len(t, resp.Errors, 2)

	paths := []string{resp.Errors[0].Path, resp.Errors[1].Path}
	assert.Contains(t, paths, "email")
	assert.Contains(t, paths, "password")
}

func TestLoginEndpoint_AuditUsesForwardedFor(t *testing.T) {
	users := newStubUsuarioRepo()
	seedUser(t, users, "ana@test.com", "clave1234")
	intentos := &stubLoginAttemptRepo{}
	svc := service.NewAuthService(users, intentos, nil, newTestCfg())
	r := loginRouter(svc)

	w := doLogin(t, r, dto.LoginRequest{Email: "ana@test.com", Password: "otraclave"}, map[string]string{
		"X-Forwarded-For": "203.0.113.9, 10.0.0.1",
		"X-Real-Ip":       "10.0.0.1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.Len(t, intentos.attempts, 1)
	require.NotNil(t, intentos.attempts[0].IPAddress)
	assert.Equal(t, "203.0.113.9", *intentos.attempts[0].IPAddress)
}

func TestRefreshEndpoint_Garbage(t *testing.T) {
	svc := service.NewAuthService(newStubUsuarioRepo(), &stubLoginAttemptRepo{}, nil, newTestCfg())
	r := loginRouter(svc)

	raw, _ := json.Marshal(dto.RefreshRequest{RefreshToken: "esto.no.es"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/refresh", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ── Tests: JWT + tenant middleware ────────────────────────────────────────────

func tenantRouter(users *stubUsuarioRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", middleware.JWTAuth(testSecret), middleware.TenantAuth(users), func(c *gin.Context) {
		tenant := middleware.GetTenant(c)
		c.JSON(http.StatusOK, gin.H{"negocio_id": tenant.NegocioID.String()})
	})
	return r
}

func TestProtected_NoToken(t *testing.T) {
	r := tenantRouter(newStubUsuarioRepo())
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protegido", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtected_ExpiredToken(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUser(t, users, "ana@test.com", "clave1234")
	r := tenantRouter(users)

	tok := signToken(t, u.ID.String(), u.Email, -time.Second)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtected_ResolvesTenant(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUser(t, users, "ana@test.com", "clave1234")
	r := tenantRouter(users)

	tok := signToken(t, u.ID.String(), u.Email, time.Hour)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, u.NegocioID.String(), resp["negocio_id"])
}

func TestProtected_SinNegocio(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUser(t, users, "ana@test.com", "clave1234")
	u.NegocioID = nil
	r := tenantRouter(users)

	tok := signToken(t, u.ID.String(), u.Email, time.Hour)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Este usuario no tiene un negocio designado", resp.Message)
}
