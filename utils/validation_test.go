package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfirmPassword(t *testing.T) {
	valid, _ := ValidateConfirmPassword("Sup3rSecret!", "Sup3rSecret!")
	assert.True(t, valid)

	valid, msg := ValidateConfirmPassword("Sup3rSecret!", "different")
	assert.False(t, valid)
	assert.NotEmpty(t, msg)
}
