package services

import "sync"

// TokenBlacklist is a process-wide set of revoked tokens. Entries live
// until the process exits; the tokens themselves expire long before an
// instance is normally recycled.
type TokenBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// Blacklist is the shared blacklist used by the HTTP layer
var Blacklist = NewTokenBlacklist()

// NewTokenBlacklist creates an empty blacklist
func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{tokens: make(map[string]struct{})}
}

// Add marks a token as revoked. Adding the same token twice is a no-op.
func (b *TokenBlacklist) Add(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
}

// IsBlacklisted reports whether the token has been revoked
func (b *TokenBlacklist) IsBlacklisted(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, found := b.tokens[token]
	return found
}

// Len returns the number of revoked tokens currently held
func (b *TokenBlacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tokens)
}
