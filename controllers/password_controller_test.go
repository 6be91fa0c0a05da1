package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryResetStore struct {
	users  map[string]*models.User
	tokens map[string]*models.PasswordResetToken
}

func newMemoryResetStore() *memoryResetStore {
	return &memoryResetStore{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.PasswordResetToken),
	}
}

func (s *memoryResetStore) FindUserByEmail(email string) (*models.User, error) {
	return s.users[email], nil
}

func (s *memoryResetStore) SaveToken(token *models.PasswordResetToken) error {
	s.tokens[token.TokenHash] = token
	return nil
}

func (s *memoryResetStore) FindTokenByHash(hash string) (*models.PasswordResetToken, error) {
	return s.tokens[hash], nil
}

func (s *memoryResetStore) ConsumePassword(token *models.PasswordResetToken, passwordHash string) error {
	for _, user := range s.users {
		if user.ID == token.UserID {
			user.Password = passwordHash
		}
	}
	s.tokens[token.TokenHash].Used = true
	return nil
}

func (s *memoryResetStore) DeleteExpiredTokens(before time.Time) (int64, error) {
	return 0, nil
}

type captureMailer struct {
	tokens []string
}

func (m *captureMailer) send(to, rawToken string) error {
	m.tokens = append(m.tokens, rawToken)
	return nil
}

func passwordTestRouter(t *testing.T) (*gin.Engine, *memoryResetStore, *captureMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemoryResetStore()
	store.users["alice@example.com"] = &models.User{
		Model: gorm.Model{ID: 1},
		Email: "alice@example.com",
	}
	mailer := &captureMailer{}
	services.PasswordReset = services.NewPasswordResetService(store, mailer.send, time.Hour)

	router := gin.New()
	router.POST("/api/v1/auth/password/forgot", ForgotPassword)
	router.GET("/api/v1/auth/password/verify", VerifyResetToken)
	router.POST("/api/v1/auth/password/reset", ResetPassword)
	return router, store, mailer
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	router, _, _ := passwordTestRouter(t)

	known := postJSON(router, "/api/v1/auth/password/forgot", `{"email":"alice@example.com"}`)
	unknown := postJSON(router, "/api/v1/auth/password/forgot", `{"email":"nobody@example.com"}`)

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestVerifyResetToken(t *testing.T) {
	router, _, mailer := passwordTestRouter(t)

	require.Equal(t, http.StatusOK,
		postJSON(router, "/api/v1/auth/password/forgot", `{"email":"alice@example.com"}`).Code)
	require.Len(t, mailer.tokens, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/password/verify?token="+mailer.tokens[0], nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/password/verify?token=bogus", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
}

func TestVerifyResetTokenMissing(t *testing.T) {
	router, _, _ := passwordTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/password/verify", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordFlow(t *testing.T) {
	router, store, mailer := passwordTestRouter(t)

	require.Equal(t, http.StatusOK,
		postJSON(router, "/api/v1/auth/password/forgot", `{"email":"alice@example.com"}`).Code)
	require.Len(t, mailer.tokens, 1)
	rawToken := mailer.tokens[0]

	w := postJSON(router, "/api/v1/auth/password/reset",
		`{"token":"`+rawToken+`","newPassword":"NewPassw0rd!"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, store.users["alice@example.com"].Password)

	// Second redemption of the same token fails
	w = postJSON(router, "/api/v1/auth/password/reset",
		`{"token":"`+rawToken+`","newPassword":"OtherPass1!"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordRejectsWeakPassword(t *testing.T) {
	router, _, mailer := passwordTestRouter(t)

	require.Equal(t, http.StatusOK,
		postJSON(router, "/api/v1/auth/password/forgot", `{"email":"alice@example.com"}`).Code)
	require.Len(t, mailer.tokens, 1)

	w := postJSON(router, "/api/v1/auth/password/reset",
		`{"token":"`+mailer.tokens[0]+`","newPassword":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	router, _, _ := passwordTestRouter(t)

	w := postJSON(router, "/api/v1/auth/password/reset",
		`{"token":"never-issued","newPassword":"NewPassw0rd!"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
