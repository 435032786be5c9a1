package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_UploadFlow(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()
	key := "companies/c-1/logo.png"

	// Unknown keys do not exist yet
	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	url, expiresAt, err := s.GenerateUploadURL(ctx, key, "image/png", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "https://storage.example.com/upload/"+key)
	assert.True(t, expiresAt.After(time.Now()))

	// Issuing the upload URL makes the confirmation check pass
	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, key))

	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStubObjectStorage_GenerateDownloadURL(t *testing.T) {
	s := NewStubObjectStorage()

	url, expiresAt, err := s.GenerateDownloadURL(context.Background(), "companies/c-1/logo.png", 1*time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, "https://storage.example.com/download/companies/c-1/logo.png")
	assert.True(t, expiresAt.After(time.Now()))
}

func TestStubObjectStorage_KeyValidation(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	_, _, err := s.GenerateUploadURL(ctx, "", "image/png", 15*time.Minute)
	assert.ErrorContains(t, err, "storage key is required")

	_, _, err = s.GenerateDownloadURL(ctx, "", 1*time.Hour)
	assert.ErrorContains(t, err, "storage key is required")

	err = s.DeleteObject(ctx, "")
	assert.ErrorContains(t, err, "storage key is required")

	exists, err := s.ObjectExists(ctx, "")
	assert.False(t, exists)
	assert.ErrorContains(t, err, "storage key is required")
}

func TestStubObjectStorage_PublicURL(t *testing.T) {
	s := NewStubObjectStorage()
	assert.Equal(t, "https://storage.example.com/companies/c-1/logo.png", s.PublicURL("companies/c-1/logo.png"))
}
