// Package pool provides parameter pool implementations for the load generator.
// It supports storing and retrieving values by semantic type with TTL expiration.
package pool

import (
	"sync/atomic"
	"time"
)

// SemanticType classifies a pooled parameter value, e.g.
// entity.room.id or common.guest_name.
type SemanticType string

// Semantic types produced and consumed by the booking API scenarios.
const (
	SemanticTypeCompanyID      SemanticType = "entity.company.id"
	SemanticTypeRoomID         SemanticType = "entity.room.id"
	SemanticTypeUserID         SemanticType = "entity.user.id"
	SemanticTypeSubscriptionID SemanticType = "entity.subscription.id"

	SemanticTypeBookingID      SemanticType = "booking.booking.id"
	SemanticTypeIdempotencyKey SemanticType = "booking.idempotency_key"

	SemanticTypeEmail     SemanticType = "common.email"
	SemanticTypePhone     SemanticType = "common.phone"
	SemanticTypeAddress   SemanticType = "common.address"
	SemanticTypeGuestName SemanticType = "common.guest_name"
	SemanticTypeTimestamp SemanticType = "common.timestamp"
	SemanticTypeUUID      SemanticType = "common.uuid"
)

// ParameterValue is one pooled value plus provenance and expiry.
// Value is treated as immutable once stored; access statistics use
// atomics so Touch can run without the container lock.
type ParameterValue struct {
	// Value holds the actual parameter value, any JSON-compatible type.
	Value any

	// SemanticType classifies the value.
	SemanticType SemanticType

	// SourceEndpoint is the request that produced the value,
	// e.g. "POST /api/v1/bookings".
	SourceEndpoint string

	// ResponsePath is the JSONPath the value was extracted from,
	// e.g. "$.data.id".
	ResponsePath string

	// CreatedAt is when the value entered the pool.
	CreatedAt time.Time

	// ExpiresAt is when the value stops being served. Zero means it
	// never expires.
	ExpiresAt time.Time

	accessCount    atomic.Int64
	lastAccessedAt atomic.Int64 // Unix nanoseconds
}

// NewParameterValue creates a ParameterValue. A ttl of 0 means the
// value never expires.
func NewParameterValue(value any, semanticType SemanticType, ttl time.Duration) *ParameterValue {
	now := time.Now()
	pv := &ParameterValue{
		Value:        value,
		SemanticType: semanticType,
		CreatedAt:    now,
	}
	pv.lastAccessedAt.Store(now.UnixNano())
	if ttl > 0 {
		pv.ExpiresAt = now.Add(ttl)
	}
	return pv
}

// WithSource records where the value came from.
func (pv *ParameterValue) WithSource(endpoint, path string) *ParameterValue {
	pv.SourceEndpoint = endpoint
	pv.ResponsePath = path
	return pv
}

// IsExpired reports whether the value is past its expiry.
func (pv *ParameterValue) IsExpired() bool {
	return !pv.ExpiresAt.IsZero() && time.Now().After(pv.ExpiresAt)
}

// Touch bumps the access statistics.
func (pv *ParameterValue) Touch() {
	pv.accessCount.Add(1)
	pv.lastAccessedAt.Store(time.Now().UnixNano())
}

// AccessCount returns how many times the value has been served.
func (pv *ParameterValue) AccessCount() int64 {
	return pv.accessCount.Load()
}

// LastAccessedAt returns when the value was last served.
func (pv *ParameterValue) LastAccessedAt() time.Time {
	return time.Unix(0, pv.lastAccessedAt.Load())
}

// Clone copies the value. The Value field is shared by reference.
func (pv *ParameterValue) Clone() *ParameterValue {
	clone := &ParameterValue{
		Value:          pv.Value,
		SemanticType:   pv.SemanticType,
		SourceEndpoint: pv.SourceEndpoint,
		ResponsePath:   pv.ResponsePath,
		CreatedAt:      pv.CreatedAt,
		ExpiresAt:      pv.ExpiresAt,
	}
	clone.accessCount.Store(pv.accessCount.Load())
	clone.lastAccessedAt.Store(pv.lastAccessedAt.Load())
	return clone
}
