package middleware

import (
	"errors"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/services"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserLookup resolves a token identity to an account
type UserLookup func(email string) (*models.User, error)

// LookupUserByEmail is the database-backed lookup used in production
func LookupUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate populates the request context from the access token in
// the Authorization header or the auth cookie. Revoked tokens are
// rejected outright regardless of how they arrived; any other failure
// leaves the request unauthenticated and lets route gates decide.
func Authenticate(lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := utils.TokenFromRequest(c)
		if tokenString == "" {
			c.Next()
			return
		}

		if services.Blacklist.IsBlacklisted(tokenString) {
			utils.LogInfo("Rejected revoked token from %s", c.ClientIP())
			utils.ClearAuthCookie(c)
			utils.Unauthorized(c, "Session has been logged out")
			c.Abort()
			return
		}

		email, err := utils.ExtractEmail(tokenString)
		if err != nil {
			utils.LogDebug("Ignoring malformed token: %v", err)
			c.Next()
			return
		}

		user, err := lookup(email)
		if err != nil || user == nil {
			utils.LogDebug("Token identity not found: %s", email)
			c.Next()
			return
		}

		if !utils.ValidateToken(tokenString, user.Email) {
			c.Next()
			return
		}

		c.Set("user", *user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly rejects authenticated users without the admin role
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		userModel, ok := user.(models.User)
		if !ok || !userModel.IsAdmin {
			utils.LogInfo("Non-admin user attempted admin access")
			utils.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}
