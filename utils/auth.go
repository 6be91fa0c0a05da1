package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/Govind-619/MemoWorks/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of an issued access token
const TokenTTL = 10 * time.Hour

// AuthCookieName is the cookie that mirrors the Authorization header
const AuthCookieName = "jwt"

// ErrMalformedToken is returned when a token cannot be parsed or its
// signature does not verify
var ErrMalformedToken = errors.New("malformed token")

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password against a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken creates a JWT token for a user with the standard TTL
func GenerateToken(user *models.User) (string, error) {
	return GenerateTokenWithTTL(user, TokenTTL)
}

// GenerateTokenWithTTL creates a JWT token that expires after ttl
func GenerateTokenWithTTL(user *models.User, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.ID
	claims["email"] = user.Email
	claims["exp"] = time.Now().Add(ttl).Unix()

	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// ExtractEmail returns the identity carried by a token. A token that
// fails to parse, verify or is expired yields ErrMalformedToken.
func ExtractEmail(tokenString string) (string, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return "", err
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrMalformedToken
	}
	return email, nil
}

// ValidateToken reports whether the token is well formed, unexpired and
// issued for the given email
func ValidateToken(tokenString, email string) bool {
	claims, err := parseToken(tokenString)
	if err != nil {
		return false
	}
	tokenEmail, ok := claims["email"].(string)
	return ok && tokenEmail == email
}

// TokenFromRequest extracts the access token from the Authorization
// header, falling back to the auth cookie. Returns "" when neither
// carries a token.
func TokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie attaches the token to the response as the auth cookie
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(AuthCookieName, token, int(TokenTTL.Seconds()), "/", "", true, true)
}

// ClearAuthCookie expires the auth cookie on the client
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", true, true)
}
