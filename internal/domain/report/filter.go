package report

import (
	"time"

	"github.com/google/uuid"
)

// Preset names a predefined reporting date range
type Preset string

const (
	PresetToday  Preset = "today"
	PresetWeek   Preset = "week"
	PresetMonth  Preset = "month"
	PresetCustom Preset = "custom"
)

// IsValid reports whether the preset is known
func (p Preset) IsValid() bool {
	switch p {
	case PresetToday, PresetWeek, PresetMonth, PresetCustom:
		return true
	}
	return false
}

// Filter scopes the aggregation queries to a tenant, a date range and
// optional booking attributes
type Filter struct {
	TenantID   uuid.UUID  `json:"-"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	RoomID     *uuid.UUID `json:"room_id,omitempty"`
	IsPaid     *bool      `json:"is_paid,omitempty"`
	Discounted *bool      `json:"discounted,omitempty"`
}

// ApplyPreset overwrites the filter's date range from a preset. The end
// date is always recomputed to today; custom leaves the explicit dates
// untouched for manual editing.
func (f *Filter) ApplyPreset(preset Preset, now time.Time) {
	if preset == PresetCustom {
		return
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	f.EndDate = today

	switch preset {
	case PresetToday:
		f.StartDate = today
	case PresetWeek:
		f.StartDate = today.AddDate(0, 0, -7)
	case PresetMonth:
		f.StartDate = today.AddDate(0, 0, -30)
	}
}
