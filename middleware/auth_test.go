package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/services"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fakeLookup(users map[string]*models.User) UserLookup {
	return func(email string) (*models.User, error) {
		return users[email], nil
	}
}

func newTestRouter(users map[string]*models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(fakeLookup(users)))

	router.GET("/open", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	protected := router.Group("/protected")
	protected.Use(RequireAuth())
	protected.GET("", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})

	admin := router.Group("/admin")
	admin.Use(RequireAuth(), AdminOnly())
	admin.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func issueToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func get(router *gin.Engine, path string, configure func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if configure != nil {
		configure(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnonymousRequestPassesOpenRoute(t *testing.T) {
	router := newTestRouter(nil)
	w := get(router, "/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnonymousRequestRejectedOnProtectedRoute(t *testing.T) {
	router := newTestRouter(nil)
	w := get(router, "/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHeaderTokenAuthenticates(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.User{Model: gorm.Model{ID: 1}, Email: "alice@example.com"}
	router := newTestRouter(map[string]*models.User{user.Email: user})
	token := issueToken(t, user)

	w := get(router, "/protected", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestCookieTokenAuthenticates(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.User{Model: gorm.Model{ID: 1}, Email: "alice@example.com"}
	router := newTestRouter(map[string]*models.User{user.Email: user})
	token := issueToken(t, user)

	w := get(router, "/protected", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBlacklistedHeaderTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.User{Model: gorm.Model{ID: 1}, Email: "alice@example.com"}
	router := newTestRouter(map[string]*models.User{user.Email: user})
	token := issueToken(t, user)

	services.Blacklist.Add(token)

	w := get(router, "/open", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	// A revoked token is rejected even on an otherwise open route
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBlacklistedCookieTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.User{Model: gorm.Model{ID: 2}, Email: "bob@example.com"}
	router := newTestRouter(map[string]*models.User{user.Email: user})
	token := issueToken(t, user)

	services.Blacklist.Add(token)

	w := get(router, "/protected", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Rejection also clears the cookie on the client
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, utils.AuthCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestMalformedTokenFallsThroughToGate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(nil)

	w := get(router, "/protected", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-jwt")
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The same garbage token does not block an open route
	w = get(router, "/open", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-jwt")
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownIdentityFallsThroughToGate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ghost := &models.User{Model: gorm.Model{ID: 9}, Email: "ghost@example.com"}
	router := newTestRouter(nil) // lookup knows nobody
	token := issueToken(t, ghost)

	w := get(router, "/protected", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyRejectsRegularUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.User{Model: gorm.Model{ID: 3}, Email: "carol@example.com"}
	router := newTestRouter(map[string]*models.User{user.Email: user})
	token := issueToken(t, user)

	w := get(router, "/admin", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	admin := &models.User{Model: gorm.Model{ID: 4}, Email: "root@example.com", IsAdmin: true}
	router := newTestRouter(map[string]*models.User{admin.Email: admin})
	token := issueToken(t, admin)

	w := get(router, "/admin", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutScenario(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.User{Model: gorm.Model{ID: 5}, Email: "dave@example.com"}
	router := newTestRouter(map[string]*models.User{user.Email: user})
	token := issueToken(t, user)

	// Token works before logout
	w := get(router, "/protected", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Logout revokes the token
	services.Blacklist.Add(token)

	w = get(router, "/protected", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
