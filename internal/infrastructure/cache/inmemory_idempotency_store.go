package cache

import (
	"context"
	"sync"
	"time"

	"github.com/harborstay/backend/internal/domain/shared"
)

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

// janitorInterval is how often expired keys are swept out.
const janitorInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed request keys in a map with
// per-key expiry. It only dedupes within a single process, so it is
// meant for single-instance deployments and tests; clustered setups
// use the Redis store.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	expiry    map[string]time.Time
	done      chan struct{}
	janitor   sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts a janitor
// goroutine that sweeps expired keys. Call Close to stop it.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		expiry: make(map[string]time.Time),
		done:   make(chan struct{}),
	}

	s.janitor.Add(1)
	go s.runJanitor()

	return s
}

// MarkProcessed records the key with a TTL. It returns true when the
// key is new and false when a live entry already exists, which is the
// signal that a retried submission must be rejected.
func (s *InMemoryIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if expiresAt, ok := s.expiry[key]; ok && now.Before(expiresAt) {
		return false, nil
	}

	s.expiry[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether a live entry exists for the key.
func (s *InMemoryIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.expiry[key]
	s.mu.RUnlock()

	return ok && time.Now().Before(expiresAt), nil
}

// Size returns the number of entries, expired ones included until the
// janitor sweeps them.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expiry)
}

// Close stops the janitor. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.janitor.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) runJanitor() {
	defer s.janitor.Done()

	ticker := time.NewTicker(janitorInterval)
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

func (s *InMemoryIdempotencyStore) cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, expiresAt := range s.expiry {
		if now.After(expiresAt) {
			delete(s.expiry, key)
		}
	}
}
