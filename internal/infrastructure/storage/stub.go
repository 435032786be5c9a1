// Package storage provides object storage implementations for file operations.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	companyapp "github.com/harborstay/backend/internal/application/company"
)

var _ companyapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage is an in-memory ObjectStorage used when no S3
// backend is configured. Issuing an upload URL marks the key as
// present so the logo confirmation flow works end to end without a
// real object store.
type StubObjectStorage struct {
	// BaseURL prefixes every generated URL.
	BaseURL string

	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewStubObjectStorage creates a StubObjectStorage with the default base URL.
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		keys:    make(map[string]struct{}),
	}
}

// GenerateUploadURL returns a fake upload URL and records the key as present.
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.Lock()
	s.keys[storageKey] = struct{}{}
	s.mu.Unlock()

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// GenerateDownloadURL returns a fake download URL.
func (s *StubObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject forgets the key.
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.keys, storageKey)
	s.mu.Unlock()

	return nil
}

// ObjectExists reports whether an upload URL was issued for the key
// and the key has not been deleted since.
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.keys[storageKey]
	s.mu.RUnlock()

	return ok, nil
}

// PublicURL returns a stable URL for an object.
func (s *StubObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}
