package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE bookings;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortOrder(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", "created_at"},
		{"allowed field passes through", "check_in", "check_in"},
		{"unknown field returns default", "secret_column", "created_at"},
		{"sql injection attempt returns default", "check_in; DROP TABLE bookings;--", "created_at"},
		{"whitespace around allowed field passes", " check_in ", "check_in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortField(tt.input, BookingSortFields, "created_at")
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	t.Run("room fields include price", func(t *testing.T) {
		assert.True(t, RoomSortFields["price"])
		assert.False(t, RoomSortFields["password_hash"])
	})

	t.Run("company fields include currency", func(t *testing.T) {
		assert.True(t, CompanySortFields["currency"])
		assert.False(t, CompanySortFields["logo_url"])
	})
}
