package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/google/uuid"
)

var (
	// ErrInvalidResetToken means the token does not match any issued token
	ErrInvalidResetToken = errors.New("invalid reset token")
	// ErrResetTokenUsed means the token was already consumed
	ErrResetTokenUsed = errors.New("reset token already used")
	// ErrResetTokenExpired means the token's validity window has passed
	ErrResetTokenExpired = errors.New("reset token expired")
)

// ResetStore is the persistence surface the reset flow needs
type ResetStore interface {
	FindUserByEmail(email string) (*models.User, error)
	SaveToken(token *models.PasswordResetToken) error
	FindTokenByHash(hash string) (*models.PasswordResetToken, error)
	// ConsumePassword applies the new password hash to the token's user
	// and marks the token used in a single transaction
	ConsumePassword(token *models.PasswordResetToken, passwordHash string) error
	DeleteExpiredTokens(before time.Time) (int64, error)
}

// ResetMailer delivers the raw reset token to the user
type ResetMailer func(to, rawToken string) error

// PasswordResetService issues, validates and consumes password reset
// tokens. Only the SHA-256 hash of a token is ever stored.
type PasswordResetService struct {
	store ResetStore
	mail  ResetMailer
	ttl   time.Duration
	now   func() time.Time
}

// PasswordReset is the shared reset service, wired in main
var PasswordReset *PasswordResetService

// NewPasswordResetService creates a reset service with the given token
// lifetime
func NewPasswordResetService(store ResetStore, mail ResetMailer, ttl time.Duration) *PasswordResetService {
	return &PasswordResetService{
		store: store,
		mail:  mail,
		ttl:   ttl,
		now:   time.Now,
	}
}

// generateResetToken builds an unguessable raw token
func generateResetToken() (string, error) {
	random := make([]byte, 24)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %v", err)
	}
	return uuid.New().String() + base64.RawURLEncoding.EncodeToString(random), nil
}

// hashResetToken derives the stored form of a raw token
func hashResetToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// RequestReset issues a reset token for the account and emails it to
// the user. Unknown emails are ignored without error so callers cannot
// probe which accounts exist.
func (s *PasswordResetService) RequestReset(email string) error {
	user, err := s.store.FindUserByEmail(strings.ToLower(email))
	if err != nil || user == nil {
		utils.LogInfo("Password reset requested for unknown email")
		return nil
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return err
	}

	token := &models.PasswordResetToken{
		TokenHash: hashResetToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.SaveToken(token); err != nil {
		return utils.WrapError(err, "failed to save reset token")
	}

	if err := s.mail(user.Email, rawToken); err != nil {
		// Delivery problems must not leak to the caller
		utils.LogError("Failed to send password reset email: %v", err)
	}
	return nil
}

// lookup resolves a raw token to its stored record and checks its state
func (s *PasswordResetService) lookup(rawToken string) (*models.PasswordResetToken, error) {
	token, err := s.store.FindTokenByHash(hashResetToken(rawToken))
	if err != nil || token == nil {
		return nil, ErrInvalidResetToken
	}
	if token.Used {
		return nil, ErrResetTokenUsed
	}
	if s.now().After(token.ExpiresAt) {
		return nil, ErrResetTokenExpired
	}
	return token, nil
}

// ValidateToken reports whether a raw token is currently redeemable.
// It never changes token state.
func (s *PasswordResetService) ValidateToken(rawToken string) bool {
	_, err := s.lookup(rawToken)
	return err == nil
}

// ResetPassword consumes the token and sets the user's new password
func (s *PasswordResetService) ResetPassword(rawToken, newPassword string) error {
	token, err := s.lookup(rawToken)
	if err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.WrapError(err, "failed to hash password")
	}

	if err := s.store.ConsumePassword(token, passwordHash); err != nil {
		return utils.WrapError(err, "failed to reset password")
	}
	utils.LogInfo("Password reset completed for user %d", token.UserID)
	return nil
}

// PurgeExpired removes tokens whose validity window has passed. Safe to
// run repeatedly.
func (s *PasswordResetService) PurgeExpired() (int64, error) {
	return s.store.DeleteExpiredTokens(s.now())
}
