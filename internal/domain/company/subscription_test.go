package company

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFreeSubscription(t *testing.T) {
	t.Run("starts on free plan active", func(t *testing.T) {
		s, err := NewFreeSubscription(uuid.New())
		require.NoError(t, err)

		assert.Equal(t, PlanFree, s.Plan)
		assert.Equal(t, SubscriptionStatusActive, s.Status)
		assert.Nil(t, s.ExpiresAt)
		assert.False(t, s.StartedAt.IsZero())
	})

	t.Run("rejects nil company", func(t *testing.T) {
		_, err := NewFreeSubscription(uuid.Nil)
		assert.Error(t, err)
	})
}

func TestSubscription_ChangePlan(t *testing.T) {
	s, err := NewFreeSubscription(uuid.New())
	require.NoError(t, err)

	t.Run("upgrades to pro with expiry", func(t *testing.T) {
		expires := time.Now().Add(365 * 24 * time.Hour)
		require.NoError(t, s.ChangePlan(PlanPro, &expires))

		assert.Equal(t, PlanPro, s.Plan)
		assert.Equal(t, SubscriptionStatusActive, s.Status)
		require.NotNil(t, s.ExpiresAt)
		assert.Len(t, s.GetDomainEvents(), 1)
	})

	t.Run("rejects past expiry", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		assert.Error(t, s.ChangePlan(PlanBasic, &past))
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		assert.Error(t, s.ChangePlan(Plan("platinum"), nil))
	})
}

func TestSubscription_ChangeStatus(t *testing.T) {
	s, err := NewFreeSubscription(uuid.New())
	require.NoError(t, err)

	t.Run("pauses active subscription", func(t *testing.T) {
		require.NoError(t, s.ChangeStatus(SubscriptionStatusPaused))
		assert.Equal(t, SubscriptionStatusPaused, s.Status)
	})

	t.Run("rejects no-op status change", func(t *testing.T) {
		assert.Error(t, s.ChangeStatus(SubscriptionStatusPaused))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		assert.Error(t, s.ChangeStatus(SubscriptionStatus("trialing")))
	})
}

func TestSubscription_EffectiveStatus(t *testing.T) {
	now := time.Now()

	t.Run("active without expiry stays active", func(t *testing.T) {
		s, err := NewFreeSubscription(uuid.New())
		require.NoError(t, err)
		assert.Equal(t, SubscriptionStatusActive, s.EffectiveStatus(now))
		assert.True(t, s.IsActive(now))
	})

	t.Run("lapsed term reads as expired", func(t *testing.T) {
		s, err := NewFreeSubscription(uuid.New())
		require.NoError(t, err)
		past := now.Add(-time.Minute)
		s.ExpiresAt = &past

		assert.Equal(t, SubscriptionStatusExpired, s.EffectiveStatus(now))
		assert.False(t, s.IsActive(now))
	})

	t.Run("canceled stays canceled past expiry", func(t *testing.T) {
		s, err := NewFreeSubscription(uuid.New())
		require.NoError(t, err)
		require.NoError(t, s.ChangeStatus(SubscriptionStatusCanceled))
		past := now.Add(-time.Minute)
		s.ExpiresAt = &past

		assert.Equal(t, SubscriptionStatusCanceled, s.EffectiveStatus(now))
	})
}
