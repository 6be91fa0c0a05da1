package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetEmailBodyReflectsTokenLifetime(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://app.memoworks.test")

	body := passwordResetEmailBody("raw-token", 45*time.Minute)

	assert.Contains(t, body, "https://app.memoworks.test/reset-password?token=raw-token")
	assert.Contains(t, body, "expire in 45 minutes")
	assert.NotContains(t, body, "1 hour")
}
