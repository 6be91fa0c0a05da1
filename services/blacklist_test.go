package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistEmpty(t *testing.T) {
	b := NewTokenBlacklist()
	assert.False(t, b.IsBlacklisted("anything"))
	assert.Equal(t, 0, b.Len())
}

func TestBlacklistAdd(t *testing.T) {
	b := NewTokenBlacklist()
	b.Add("token-a")

	assert.True(t, b.IsBlacklisted("token-a"))
	assert.False(t, b.IsBlacklisted("token-b"))
}

func TestBlacklistAddIdempotent(t *testing.T) {
	b := NewTokenBlacklist()
	b.Add("token-a")
	b.Add("token-a")

	assert.True(t, b.IsBlacklisted("token-a"))
	assert.Equal(t, 1, b.Len())
}

func TestBlacklistMembershipIsMonotonic(t *testing.T) {
	b := NewTokenBlacklist()
	for i := 0; i < 100; i++ {
		b.Add(fmt.Sprintf("token-%d", i))
	}
	for i := 0; i < 100; i++ {
		assert.True(t, b.IsBlacklisted(fmt.Sprintf("token-%d", i)))
	}
	assert.Equal(t, 100, b.Len())
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	b := NewTokenBlacklist()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		token := fmt.Sprintf("token-%d", i)
		go func() {
			defer wg.Done()
			b.Add(token)
		}()
		go func() {
			defer wg.Done()
			b.IsBlacklisted(token)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, b.Len())
	for i := 0; i < 50; i++ {
		assert.True(t, b.IsBlacklisted(fmt.Sprintf("token-%d", i)))
	}
}
