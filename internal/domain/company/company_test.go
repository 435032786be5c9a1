package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	t.Run("creates active company", func(t *testing.T) {
		c, err := NewCompany("Blue Lagoon Charters", "12 Harbour Rd", "EUR")
		require.NoError(t, err)

		assert.Equal(t, "Blue Lagoon Charters", c.Name)
		assert.Equal(t, "12 Harbour Rd", c.Address)
		assert.Equal(t, "EUR", c.Currency)
		assert.Equal(t, CompanyStatusActive, c.Status)
		assert.True(t, c.IsActive())
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("defaults currency to USD", func(t *testing.T) {
		c, err := NewCompany("Blue Lagoon Charters", "", "")
		require.NoError(t, err)
		assert.Equal(t, "USD", c.Currency)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCompany("  ", "", "USD")
		assert.Error(t, err)
	})
}

func TestCompany_UpdateSettings(t *testing.T) {
	c, err := NewCompany("Blue Lagoon Charters", "", "USD")
	require.NoError(t, err)

	t.Run("updates name address and currency", func(t *testing.T) {
		oldVersion := c.Version
		require.NoError(t, c.UpdateSettings("Lagoon Stays", "Pier 4", "GBP"))

		assert.Equal(t, "Lagoon Stays", c.Name)
		assert.Equal(t, "Pier 4", c.Address)
		assert.Equal(t, "GBP", c.Currency)
		assert.Equal(t, oldVersion+1, c.Version)
	})

	t.Run("keeps currency when omitted", func(t *testing.T) {
		require.NoError(t, c.UpdateSettings("Lagoon Stays", "Pier 4", ""))
		assert.Equal(t, "GBP", c.Currency)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		assert.Error(t, c.UpdateSettings("", "Pier 4", "GBP"))
	})
}

func TestCompany_PauseResume(t *testing.T) {
	c, err := NewCompany("Blue Lagoon Charters", "", "USD")
	require.NoError(t, err)

	t.Run("pauses active company", func(t *testing.T) {
		require.NoError(t, c.Pause())
		assert.Equal(t, CompanyStatusPaused, c.Status)
		assert.False(t, c.IsActive())
	})

	t.Run("rejects double pause", func(t *testing.T) {
		assert.Error(t, c.Pause())
	})

	t.Run("resumes paused company", func(t *testing.T) {
		require.NoError(t, c.Resume())
		assert.True(t, c.IsActive())
	})
}
