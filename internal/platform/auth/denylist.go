package auth

import (
	"context"
	"sync"
	"time"
)

// Denylist tracks revoked refresh-token jtis. A revoked refresh token can
// never again mint an access token, even before its natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Close() error
}

// MemoryDenylist keeps revoked jtis in memory with automatic cleanup of
// entries whose tokens have expired anyway. Thread-safe.
type MemoryDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time // jti -> natural expiry
	done    chan struct{}
}

// NewMemoryDenylist creates the store and starts a background goroutine
// that drops expired entries every 5 minutes.
func NewMemoryDenylist() *MemoryDenylist {
	s := &MemoryDenylist{
		entries: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryDenylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jti] = expiresAt
	return nil
}

func (s *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[jti]
	return ok, nil
}

// Count returns the number of currently revoked tokens.
func (s *MemoryDenylist) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryDenylist) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return nil
}

func (s *MemoryDenylist) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes entries whose tokens are past their natural expiry; an
// expired token cannot mint anything regardless of the denylist.
func (s *MemoryDenylist) cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, expiresAt := range s.entries {
		if now.After(expiresAt) {
			delete(s.entries, jti)
		}
	}
}
