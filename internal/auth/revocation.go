package auth

import (
	"context"
	"sync"
	"time"

	"github.com/garajdev/garage-api/internal/cache"
)

const (
	revokedKeyPrefix = "revoked:"
	sweepInterval    = 24 * time.Hour
)

// RevocationRegistry tracks tokens that must be denied for the remainder of
// their lifetime (logout, suspected compromise). The local set is the source
// of truth for a single instance; when a Redis client is provided,
// revocations are mirrored there with a TTL equal to the token's remaining
// lifetime so multiple instances share state. Redis errors fail safe to the
// local set's answer.
type RevocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]struct{}

	shared *cache.Client
	svc    *Service
}

// NewRevocationRegistry creates an empty registry. shared may be nil.
func NewRevocationRegistry(svc *Service, shared *cache.Client) *RevocationRegistry {
	return &RevocationRegistry{
		revoked: make(map[string]struct{}),
		shared:  shared,
		svc:     svc,
	}
}

// Revoke blocks a token. Every subsequent guard check for this exact token
// string fails until the token itself expires.
func (r *RevocationRegistry) Revoke(ctx context.Context, token string) {
	r.mu.Lock()
	r.revoked[token] = struct{}{}
	r.mu.Unlock()

	ttl := sweepInterval
	if exp, err := r.svc.DecodeExpiry(token); err == nil {
		if remaining := time.Until(exp); remaining > 0 {
			ttl = remaining
		}
	}
	r.shared.Set(ctx, revokedKeyPrefix+token, []byte("1"), ttl)
}

// IsRevoked reports whether a token has been revoked.
func (r *RevocationRegistry) IsRevoked(ctx context.Context, token string) bool {
	r.mu.RLock()
	_, found := r.revoked[token]
	r.mu.RUnlock()
	if found {
		return true
	}

	data, _ := r.shared.Get(ctx, revokedKeyPrefix+token)
	return data != nil
}

// Len returns the number of locally tracked tokens.
func (r *RevocationRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}

// StartSweeper prunes the local set on a fixed interval until ctx is
// cancelled. Best-effort cleanup only: a missed prune never changes an
// authorization decision, it just holds memory longer.
func (r *RevocationRegistry) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep(time.Now())
			}
		}
	}()
}

// sweep deletes expired tokens from the local set. Undecodable entries are
// garbage and are deleted too.
func (r *RevocationRegistry) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token := range r.revoked {
		exp, err := r.svc.DecodeExpiry(token)
		if err != nil || exp.Before(now) {
			delete(r.revoked, token)
		}
	}
}
