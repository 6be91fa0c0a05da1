package services

import (
	"errors"
	"time"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"gorm.io/gorm"
)

// gormResetStore backs the reset flow with the application database
type gormResetStore struct {
	db *gorm.DB
}

// NewGormResetStore creates a ResetStore on top of the given connection
func NewGormResetStore(db *gorm.DB) ResetStore {
	return &gormResetStore{db: db}
}

func (s *gormResetStore) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormResetStore) SaveToken(token *models.PasswordResetToken) error {
	return s.db.Create(token).Error
}

func (s *gormResetStore) FindTokenByHash(hash string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	if err := s.db.Where("token_hash = ?", hash).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (s *gormResetStore) ConsumePassword(token *models.PasswordResetToken, passwordHash string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", token.UserID).
			Update("password", passwordHash).Error; err != nil {
			return err
		}
		return tx.Model(token).Update("used", true).Error
	})
}

func (s *gormResetStore) DeleteExpiredTokens(before time.Time) (int64, error) {
	result := s.db.Unscoped().Where("expires_at < ?", before).
		Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}

// InitPasswordReset wires the shared reset service against the
// application database and mailer
func InitPasswordReset(ttl time.Duration) {
	mailer := func(to, rawToken string) error {
		return utils.SendPasswordResetEmail(to, rawToken, ttl)
	}
	PasswordReset = NewPasswordResetService(NewGormResetStore(config.DB), mailer, ttl)
}
