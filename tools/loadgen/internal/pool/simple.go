package pool

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// SimpleParameterPool guards everything with one lock. Fine for
// moderate concurrency; scenario workers hammering many goroutines
// should use ShardedParameterPool instead.
type SimpleParameterPool struct {
	mu     sync.RWMutex
	byType map[SemanticType][]*ParameterValue
	config PoolConfig
	opened time.Time

	hitCount      atomic.Int64
	missCount     atomic.Int64
	addCount      atomic.Int64
	evictionCount atomic.Int64
	expireCount   atomic.Int64

	sweepTicker *time.Ticker
	sweepDone   chan struct{}
	closed      atomic.Bool

	rng *rand.Rand
}

// NewSimpleParameterPool creates a single-lock pool. A background
// expiry sweep starts when the config sets a cleanup interval.
func NewSimpleParameterPool(config PoolConfig) *SimpleParameterPool {
	p := &SimpleParameterPool{
		byType:    make(map[SemanticType][]*ParameterValue),
		config:    config,
		opened:    time.Now(),
		sweepDone: make(chan struct{}),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if config.CleanupInterval > 0 {
		p.sweepTicker = time.NewTicker(config.CleanupInterval)
		go p.sweepLoop()
	}

	return p
}

// Add stores a value under its semantic type, evicting one first when
// the type is at capacity.
func (p *SimpleParameterPool) Add(ctx context.Context, value *ParameterValue) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.addCount.Add(1)

	evicted := 0
	if p.config.MaxValuesPerType > 0 && len(p.byType[value.SemanticType]) >= p.config.MaxValuesPerType {
		evicted = p.dropVictim(value.SemanticType)
	}

	p.byType[value.SemanticType] = append(p.byType[value.SemanticType], value)

	return evicted, nil
}

// dropVictim removes one value of the given type per the eviction
// policy. Caller holds the write lock.
func (p *SimpleParameterPool) dropVictim(semanticType SemanticType) int {
	values := p.byType[semanticType]
	if len(values) == 0 {
		return 0
	}

	victim := 0
	switch p.config.EvictionPolicy {
	case EvictionLRU:
		oldest := values[0].LastAccessedAt()
		for i, v := range values {
			if v.LastAccessedAt().Before(oldest) {
				oldest = v.LastAccessedAt()
				victim = i
			}
		}
	case EvictionRandom:
		victim = p.rng.Intn(len(values))
	default:
		// FIFO, values append in arrival order so index 0 is oldest
	}

	p.byType[semanticType] = append(values[:victim], values[victim+1:]...)
	p.evictionCount.Add(1)

	return 1
}

// Get returns the oldest live value for the semantic type, nil when
// none is available.
func (p *SimpleParameterPool) Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range p.byType[semanticType] {
		if !v.IsExpired() {
			v.Touch()
			p.hitCount.Add(1)
			return v, nil
		}
	}

	p.missCount.Add(1)
	return nil, nil
}

// GetRandom returns a uniformly random live value for the semantic
// type, nil when none is available.
func (p *SimpleParameterPool) GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	live := p.liveValuesLocked(semanticType)
	if len(live) == 0 {
		p.missCount.Add(1)
		return nil, nil
	}

	v := live[p.rng.Intn(len(live))]
	v.Touch()
	p.hitCount.Add(1)
	return v, nil
}

// liveValuesLocked collects the non-expired values of one type. Caller
// holds the lock.
func (p *SimpleParameterPool) liveValuesLocked(semanticType SemanticType) []*ParameterValue {
	values := p.byType[semanticType]
	live := make([]*ParameterValue, 0, len(values))
	for _, v := range values {
		if !v.IsExpired() {
			live = append(live, v)
		}
	}
	return live
}

// GetAll returns every live value for the semantic type.
func (p *SimpleParameterPool) GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.liveValuesLocked(semanticType), nil
}

// Count reports how many values the semantic type holds, expired ones
// included until a sweep runs.
func (p *SimpleParameterPool) Count(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.byType[semanticType]), nil
}

// Remove drops a specific value, reporting whether it was present.
func (p *SimpleParameterPool) Remove(ctx context.Context, value *ParameterValue) (bool, error) {
	if p.closed.Load() {
		return false, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	values := p.byType[value.SemanticType]
	for i, v := range values {
		if v == value {
			p.byType[value.SemanticType] = append(values[:i], values[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

// Clear drops every value of one semantic type.
func (p *SimpleParameterPool) Clear(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	count := len(p.byType[semanticType])
	delete(p.byType, semanticType)
	return count, nil
}

// ClearAll empties the pool.
func (p *SimpleParameterPool) ClearAll(ctx context.Context) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.byType = make(map[SemanticType][]*ParameterValue)
	return nil
}

// Cleanup drops expired values across all types and reports how many
// were removed.
func (p *SimpleParameterPool) Cleanup(ctx context.Context) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for st, values := range p.byType {
		kept := make([]*ParameterValue, 0, len(values))
		for _, v := range values {
			if v.IsExpired() {
				total++
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) != len(values) {
			p.byType[st] = kept
		}
	}

	p.expireCount.Add(int64(total))
	return total, nil
}

func (p *SimpleParameterPool) sweepLoop() {
	for {
		select {
		case <-p.sweepTicker.C:
			_, _ = p.Cleanup(context.Background())
		case <-p.sweepDone:
			return
		}
	}
}

// Stats returns a snapshot of the pool counters.
func (p *SimpleParameterPool) Stats(ctx context.Context) (Stats, error) {
	if p.closed.Load() {
		return Stats{}, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := Stats{
		ValuesByType:  make(map[SemanticType]int64),
		HitCount:      p.hitCount.Load(),
		MissCount:     p.missCount.Load(),
		EvictionCount: p.evictionCount.Load(),
		ExpiredCount:  p.expireCount.Load(),
		AddCount:      p.addCount.Load(),
		Uptime:        time.Since(p.opened),
	}

	for st, values := range p.byType {
		n := int64(len(values))
		stats.TotalValues += n
		stats.ValuesByType[st] = n
	}

	return stats, nil
}

// Types lists the semantic types that currently hold values.
func (p *SimpleParameterPool) Types(ctx context.Context) ([]SemanticType, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	types := make([]SemanticType, 0, len(p.byType))
	for st, values := range p.byType {
		if len(values) > 0 {
			types = append(types, st)
		}
	}

	return types, nil
}

// Close stops the sweep goroutine. Subsequent operations fail with
// ErrPoolClosed.
func (p *SimpleParameterPool) Close() error {
	if p.closed.Swap(true) {
		return ErrPoolClosed
	}

	if p.sweepTicker != nil {
		p.sweepTicker.Stop()
		close(p.sweepDone)
	}

	return nil
}

// EvictionCount returns how many values have been evicted so far.
func (p *SimpleParameterPool) EvictionCount() int64 {
	return p.evictionCount.Load()
}
