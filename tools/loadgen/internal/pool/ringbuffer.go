package pool

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const defaultBufferCapacity = 1000

// RingBuffer is a fixed-capacity circular store for parameter values.
// When full it evicts according to the configured policy; Get walks in
// FIFO order while GetRandom samples uniformly. All methods are safe
// for concurrent use.
type RingBuffer struct {
	mu       sync.RWMutex
	items    []*ParameterValue
	head     int // next write slot
	tail     int // oldest occupied slot
	count    int
	capacity int

	evictionPolicy EvictionPolicy
	evictionCount  atomic.Int64

	// Slot indices ordered oldest access first, maintained only under
	// the LRU policy.
	accessOrder []int

	rng *rand.Rand
}

// NewRingBuffer creates a buffer holding at most capacity values,
// evicting per policy once full.
func NewRingBuffer(capacity int, policy EvictionPolicy) *RingBuffer {
	if capacity <= 0 {
		capacity = defaultBufferCapacity
	}
	return &RingBuffer{
		items:          make([]*ParameterValue, capacity),
		capacity:       capacity,
		evictionPolicy: policy,
		accessOrder:    make([]int, 0, capacity),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add stores a value, evicting one first when the buffer is full.
// Returns how many values were evicted.
func (rb *RingBuffer) Add(value *ParameterValue) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	evicted := 0
	if rb.count >= rb.capacity {
		evicted = rb.evictVictim()
	}

	rb.items[rb.head] = value
	if rb.evictionPolicy == EvictionLRU {
		rb.accessOrder = append(rb.accessOrder, rb.head)
	}
	rb.head = (rb.head + 1) % rb.capacity
	rb.count++

	return evicted
}

// evictVictim clears one slot per the eviction policy. Caller holds the
// write lock.
func (rb *RingBuffer) evictVictim() int {
	if rb.count == 0 {
		return 0
	}

	var victim int
	switch rb.evictionPolicy {
	case EvictionLRU:
		if len(rb.accessOrder) > 0 {
			victim = rb.accessOrder[0]
			rb.accessOrder = rb.accessOrder[1:]
			if victim == rb.tail {
				rb.tail = (rb.tail + 1) % rb.capacity
			}
		} else {
			victim = rb.tail
			rb.tail = (rb.tail + 1) % rb.capacity
		}

	case EvictionRandom:
		victim = rb.randomOccupiedSlot()
		if victim == rb.tail {
			rb.tail = (rb.tail + 1) % rb.capacity
		}

	default: // FIFO
		victim = rb.tail
		rb.tail = (rb.tail + 1) % rb.capacity
	}

	rb.items[victim] = nil
	rb.count--
	rb.evictionCount.Add(1)

	return 1
}

// randomOccupiedSlot returns a random occupied index. Caller holds the
// lock and guarantees count > 0.
func (rb *RingBuffer) randomOccupiedSlot() int {
	start := (rb.tail + rb.rng.Intn(rb.count)) % rb.capacity
	for i := 0; i < rb.capacity; i++ {
		idx := (start + i) % rb.capacity
		if rb.items[idx] != nil {
			return idx
		}
	}
	return rb.tail
}

// Get returns the oldest value without removing it, nil when empty.
func (rb *RingBuffer) Get() *ParameterValue {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.count == 0 {
		return nil
	}

	for i := 0; i < rb.capacity; i++ {
		idx := (rb.tail + i) % rb.capacity
		if v := rb.items[idx]; v != nil {
			v.Touch()
			rb.noteAccess(idx)
			return v
		}
	}
	return nil
}

// GetRandom returns a random value without removing it, nil when empty.
func (rb *RingBuffer) GetRandom() *ParameterValue {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.count == 0 {
		return nil
	}

	start := rb.rng.Intn(rb.capacity)
	for i := 0; i < rb.capacity; i++ {
		idx := (start + i) % rb.capacity
		if v := rb.items[idx]; v != nil {
			v.Touch()
			rb.noteAccess(idx)
			return v
		}
	}
	return nil
}

// noteAccess moves a slot to the most-recent end of the access order.
// No-op unless the policy is LRU. Caller holds the write lock.
func (rb *RingBuffer) noteAccess(idx int) {
	if rb.evictionPolicy != EvictionLRU {
		return
	}
	rb.dropAccess(idx)
	rb.accessOrder = append(rb.accessOrder, idx)
}

// dropAccess removes a slot from the access order if present. Caller
// holds the write lock.
func (rb *RingBuffer) dropAccess(idx int) {
	for i, slot := range rb.accessOrder {
		if slot == idx {
			rb.accessOrder = append(rb.accessOrder[:i], rb.accessOrder[i+1:]...)
			return
		}
	}
}

// GetAll returns every value currently in the buffer.
func (rb *RingBuffer) GetAll() []*ParameterValue {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]*ParameterValue, 0, rb.count)
	for _, item := range rb.items {
		if item != nil {
			result = append(result, item)
		}
	}
	return result
}

// Count returns the number of values held.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// Capacity returns the fixed buffer capacity.
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// EvictionCount returns how many values have been evicted so far.
func (rb *RingBuffer) EvictionCount() int64 {
	return rb.evictionCount.Load()
}

// Remove drops a specific value, reporting whether it was present.
func (rb *RingBuffer) Remove(value *ParameterValue) bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for i, item := range rb.items {
		if item == value {
			rb.items[i] = nil
			rb.count--
			if rb.evictionPolicy == EvictionLRU {
				rb.dropAccess(i)
			}
			return true
		}
	}
	return false
}

// Clear empties the buffer and returns how many values it held.
func (rb *RingBuffer) Clear() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	removed := rb.count
	for i := range rb.items {
		rb.items[i] = nil
	}
	rb.head = 0
	rb.tail = 0
	rb.count = 0
	rb.accessOrder = rb.accessOrder[:0]

	return removed
}

// RemoveExpired drops every expired value and returns how many were
// removed.
func (rb *RingBuffer) RemoveExpired() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	removed := 0
	for i, item := range rb.items {
		if item == nil || !item.IsExpired() {
			continue
		}
		rb.items[i] = nil
		rb.count--
		removed++
		if rb.evictionPolicy == EvictionLRU {
			rb.dropAccess(i)
		}
	}
	return removed
}

// IsFull reports whether the buffer is at capacity.
func (rb *RingBuffer) IsFull() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count >= rb.capacity
}

// IsEmpty reports whether the buffer holds no values.
func (rb *RingBuffer) IsEmpty() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count == 0
}
