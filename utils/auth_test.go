package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Govind-619/MemoWorks/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testUser() *models.User {
	return &models.User{
		Model: gorm.Model{ID: 42},
		Email: "alice@example.com",
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.True(t, CheckPassword("Sup3rSecret!", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := testUser()
	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := ExtractEmail(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, email)

	assert.True(t, ValidateToken(token, user.Email))
}

func TestValidateTokenWrongIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(testUser())
	require.NoError(t, err)

	assert.False(t, ValidateToken(token, "bob@example.com"))
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := testUser()
	token, err := GenerateTokenWithTTL(user, -time.Minute)
	require.NoError(t, err)

	_, err = ExtractEmail(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.False(t, ValidateToken(token, user.Email))
}

func TestTamperedTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(testUser())
	require.NoError(t, err)

	tampered := token + "x"
	_, err = ExtractEmail(tampered)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenSignedWithDifferentSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ExtractEmail(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestTokenFromRequestPrefersHeader(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request.Header.Set("Authorization", "Bearer header-token")
	c.Request.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})

	assert.Equal(t, "header-token", TokenFromRequest(c))
}

func TestTokenFromRequestFallsBackToCookie(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})

	assert.Equal(t, "cookie-token", TokenFromRequest(c))
}

func TestTokenFromRequestEmpty(t *testing.T) {
	c, _ := newTestContext(t)
	assert.Empty(t, TokenFromRequest(c))

	// A non-Bearer Authorization header does not count
	c.Request.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, TokenFromRequest(c))
}

func TestClearAuthCookieExpiresCookie(t *testing.T) {
	c, w := newTestContext(t)
	ClearAuthCookie(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, AuthCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
