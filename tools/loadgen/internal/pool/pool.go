// Package pool stores identifiers harvested from booking API responses
// (company IDs, room IDs, booking IDs and the like) so later load test
// requests can reference entities that actually exist. Values are keyed
// by semantic type, expire on a TTL and are evicted when a type's slice
// of the pool fills up.
package pool

import (
	"context"
	"strings"
	"time"
)

// EvictionPolicy selects which value to drop when a semantic type is at
// capacity.
type EvictionPolicy int

const (
	// EvictionFIFO drops the oldest value.
	EvictionFIFO EvictionPolicy = iota

	// EvictionLRU drops the least recently accessed value.
	EvictionLRU

	// EvictionRandom drops a uniformly random value.
	EvictionRandom
)

func (e EvictionPolicy) String() string {
	switch e {
	case EvictionFIFO:
		return "FIFO"
	case EvictionLRU:
		return "LRU"
	case EvictionRandom:
		return "Random"
	default:
		return "Unknown"
	}
}

// ParseEvictionPolicy maps a config string to a policy, case
// insensitively. Unrecognized input falls back to FIFO.
func ParseEvictionPolicy(s string) EvictionPolicy {
	switch strings.ToLower(s) {
	case "lru":
		return EvictionLRU
	case "random":
		return EvictionRandom
	default:
		return EvictionFIFO
	}
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	// TotalValues counts values currently held, across all types.
	TotalValues int64

	// ValuesByType breaks TotalValues down per semantic type.
	ValuesByType map[SemanticType]int64

	// HitCount counts Get/GetRandom calls that returned a value.
	HitCount int64

	// MissCount counts Get/GetRandom calls that came back empty.
	MissCount int64

	// EvictionCount counts values dropped to make room.
	EvictionCount int64

	// ExpiredCount counts values removed because their TTL lapsed.
	ExpiredCount int64

	// AddCount counts every Add since the pool started.
	AddCount int64

	// Uptime is the time elapsed since the pool was created.
	Uptime time.Duration
}

// HitRate reports hits as a percentage of all lookups, 0 when nothing
// has been looked up yet.
func (s Stats) HitRate() float64 {
	lookups := s.HitCount + s.MissCount
	if lookups == 0 {
		return 0
	}
	return float64(s.HitCount) / float64(lookups) * 100
}

// ParameterPool is the storage contract shared by the simple and
// sharded implementations. Lookups that find nothing return a nil value
// with a nil error; only a closed pool produces an error.
type ParameterPool interface {
	// Add stores a value under its semantic type and reports how many
	// values were evicted to make room.
	Add(ctx context.Context, value *ParameterValue) (evicted int, err error)

	// Get returns a live value for the semantic type, nil when none.
	Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error)

	// GetRandom returns a uniformly random live value, nil when none.
	GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error)

	// GetAll returns every live value for the semantic type.
	GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error)

	// Count reports how many values the semantic type holds, expired
	// ones included until cleanup runs.
	Count(ctx context.Context, semanticType SemanticType) (int, error)

	// Remove drops a specific value, reporting whether it was present.
	Remove(ctx context.Context, value *ParameterValue) (bool, error)

	// Clear drops every value of one semantic type and reports how many
	// were removed.
	Clear(ctx context.Context, semanticType SemanticType) (int, error)

	// ClearAll empties the pool.
	ClearAll(ctx context.Context) error

	// Cleanup drops expired values and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Stats returns a snapshot of the pool counters.
	Stats(ctx context.Context) (Stats, error)

	// Types lists the semantic types that currently hold values.
	Types(ctx context.Context) ([]SemanticType, error)

	// Close stops background work; subsequent calls fail with
	// ErrPoolClosed.
	Close() error
}

// PoolConfig tunes pool capacity, expiry and eviction.
type PoolConfig struct {
	// DefaultTTL applies to values added without an explicit TTL. Zero
	// means values never expire.
	DefaultTTL time.Duration

	// MaxValuesPerType caps each semantic type. Zero means uncapped.
	MaxValuesPerType int

	// EvictionPolicy picks the victim when a type is at capacity.
	EvictionPolicy EvictionPolicy

	// CleanupInterval is the period of the background expiry sweep.
	// Zero disables the sweep; callers can still run Cleanup manually.
	CleanupInterval time.Duration

	// ShardCount sizes ShardedParameterPool. Rounded up to a power of
	// two so shard selection stays a mask operation.
	ShardCount int
}

// DefaultPoolConfig returns the defaults used by the load generator:
// five minute TTL, a thousand values per type, FIFO eviction and a
// sweep every minute.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		DefaultTTL:       5 * time.Minute,
		MaxValuesPerType: 1000,
		EvictionPolicy:   EvictionFIFO,
		CleanupInterval:  1 * time.Minute,
		ShardCount:       16,
	}
}
