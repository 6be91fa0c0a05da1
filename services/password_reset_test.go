package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeResetStore struct {
	users  map[string]*models.User
	tokens map[string]*models.PasswordResetToken
	nextID uint
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.PasswordResetToken),
	}
}

func (s *fakeResetStore) addUser(id uint, email string) *models.User {
	user := &models.User{Model: gorm.Model{ID: id}, Email: email, Password: "old-hash"}
	s.users[email] = user
	return user
}

func (s *fakeResetStore) FindUserByEmail(email string) (*models.User, error) {
	return s.users[email], nil
}

func (s *fakeResetStore) SaveToken(token *models.PasswordResetToken) error {
	s.nextID++
	token.ID = s.nextID
	s.tokens[token.TokenHash] = token
	return nil
}

func (s *fakeResetStore) FindTokenByHash(hash string) (*models.PasswordResetToken, error) {
	return s.tokens[hash], nil
}

func (s *fakeResetStore) ConsumePassword(token *models.PasswordResetToken, passwordHash string) error {
	for _, user := range s.users {
		if user.ID == token.UserID {
			user.Password = passwordHash
		}
	}
	s.tokens[token.TokenHash].Used = true
	token.Used = true
	return nil
}

func (s *fakeResetStore) DeleteExpiredTokens(before time.Time) (int64, error) {
	var deleted int64
	for hash, token := range s.tokens {
		if token.ExpiresAt.Before(before) {
			delete(s.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

type recordingMailer struct {
	to     []string
	tokens []string
	err    error
}

func (m *recordingMailer) send(to, rawToken string) error {
	m.to = append(m.to, to)
	m.tokens = append(m.tokens, rawToken)
	return m.err
}

func newTestResetService(store *fakeResetStore, mailer *recordingMailer) *PasswordResetService {
	return NewPasswordResetService(store, mailer.send, time.Hour)
}

func TestRequestResetUnknownEmailIsSilent(t *testing.T) {
	store := newFakeResetStore()
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	err := svc.RequestReset("nobody@example.com")

	require.NoError(t, err)
	assert.Empty(t, mailer.to)
	assert.Empty(t, store.tokens)
}

func TestRequestResetStoresOnlyHash(t *testing.T) {
	store := newFakeResetStore()
	store.addUser(1, "alice@example.com")
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	require.NoError(t, svc.RequestReset("alice@example.com"))

	require.Len(t, mailer.tokens, 1)
	rawToken := mailer.tokens[0]
	assert.Equal(t, "alice@example.com", mailer.to[0])

	require.Len(t, store.tokens, 1)
	for hash, token := range store.tokens {
		assert.NotEqual(t, rawToken, hash)
		assert.NotContains(t, hash, rawToken)
		assert.Equal(t, uint(1), token.UserID)
		assert.False(t, token.Used)
	}
}

func TestRequestResetTokenExpiry(t *testing.T) {
	store := newFakeResetStore()
	store.addUser(1, "alice@example.com")
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	require.NoError(t, svc.RequestReset("alice@example.com"))

	for _, token := range store.tokens {
		assert.Equal(t, issuedAt.Add(time.Hour), token.ExpiresAt)
	}
}

func TestRequestResetSurvivesMailerFailure(t *testing.T) {
	store := newFakeResetStore()
	store.addUser(1, "alice@example.com")
	mailer := &recordingMailer{err: errors.New("smtp down")}
	svc := newTestResetService(store, mailer)

	err := svc.RequestReset("alice@example.com")

	require.NoError(t, err)
	assert.Len(t, store.tokens, 1)
}

func TestRequestResetNormalizesEmailCase(t *testing.T) {
	store := newFakeResetStore()
	store.addUser(1, "bob@example.com")
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	// Accounts are stored lowercased; the user may type any casing
	require.NoError(t, svc.RequestReset("Bob@Example.com"))

	require.Len(t, mailer.tokens, 1)
	assert.Equal(t, "bob@example.com", mailer.to[0])
	assert.Len(t, store.tokens, 1)
}

func TestValidateTokenDoesNotConsume(t *testing.T) {
	store := newFakeResetStore()
	store.addUser(1, "alice@example.com")
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	require.NoError(t, svc.RequestReset("alice@example.com"))
	rawToken := mailer.tokens[0]

	assert.True(t, svc.ValidateToken(rawToken))
	assert.True(t, svc.ValidateToken(rawToken))
	assert.False(t, svc.ValidateToken("bogus"))
}

func TestResetPasswordSingleUse(t *testing.T) {
	store := newFakeResetStore()
	user := store.addUser(1, "alice@example.com")
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	require.NoError(t, svc.RequestReset("alice@example.com"))
	rawToken := mailer.tokens[0]

	require.NoError(t, svc.ResetPassword(rawToken, "NewPassw0rd!"))
	assert.True(t, utils.CheckPassword("NewPassw0rd!", user.Password))

	// The token is spent: it no longer validates or redeems
	assert.False(t, svc.ValidateToken(rawToken))
	err := svc.ResetPassword(rawToken, "AnotherPass1!")
	assert.ErrorIs(t, err, ErrResetTokenUsed)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	store := newFakeResetStore()
	store.addUser(1, "alice@example.com")
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	require.NoError(t, svc.RequestReset("alice@example.com"))
	rawToken := mailer.tokens[0]

	svc.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }

	assert.False(t, svc.ValidateToken(rawToken))
	err := svc.ResetPassword(rawToken, "NewPassw0rd!")
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	store := newFakeResetStore()
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	err := svc.ResetPassword("never-issued", "NewPassw0rd!")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPurgeExpiredRemovesOnlyStaleTokens(t *testing.T) {
	store := newFakeResetStore()
	store.addUser(1, "alice@example.com")
	store.addUser(2, "bob@example.com")
	mailer := &recordingMailer{}
	svc := newTestResetService(store, mailer)

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	require.NoError(t, svc.RequestReset("alice@example.com"))

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	require.NoError(t, svc.RequestReset("bob@example.com"))

	purged, err := svc.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Len(t, store.tokens, 1)
}

func TestGeneratedTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := generateResetToken()
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestHashResetTokenIsStableAndOpaque(t *testing.T) {
	hash := hashResetToken("some-token")
	assert.Equal(t, hash, hashResetToken("some-token"))
	assert.NotEqual(t, hash, hashResetToken("other-token"))
	assert.False(t, strings.Contains(hash, "some-token"))
}
