package services

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

// Rotator picks replies from intent pools with a cursor per pool.
// A Rotator belongs to one session; two sessions never share cursors.
type Rotator struct {
	mode domain.RotationMode

	mu      sync.Mutex
	cursors map[domain.Intent]int
	last    map[domain.Intent]int
	rng     *rand.Rand
}

// NewRotator creates a rotator for the given mode. Unknown modes rotate round robin.
func NewRotator(mode domain.RotationMode) *Rotator {
	seed := uint64(time.Now().UnixNano()) //nolint:gosec // G115: seed only.
	return NewSeededRotator(mode, seed)
}

// NewSeededRotator creates a rotator whose shuffle order is reproducible.
func NewSeededRotator(mode domain.RotationMode, seed uint64) *Rotator {
	if !mode.IsValid() {
		mode = domain.RotationRoundRobin
	}
	return &Rotator{
		mode:    mode,
		cursors: make(map[domain.Intent]int),
		last:    make(map[domain.Intent]int),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // G404: not security sensitive.
	}
}

// Mode returns the rotation mode.
func (r *Rotator) Mode() domain.RotationMode {
	return r.mode
}

// Next returns the next reply from pool for intent. An empty pool returns "".
func (r *Rotator) Next(intent domain.Intent, pool []string) string {
	if len(pool) == 0 {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode == domain.RotationShuffle {
		return pool[r.shuffleIndex(intent, len(pool))]
	}

	cursor := r.cursors[intent]
	r.cursors[intent] = cursor + 1
	return pool[cursor%len(pool)]
}

// shuffleIndex picks a random index that differs from the previous pick.
func (r *Rotator) shuffleIndex(intent domain.Intent, n int) int {
	if n == 1 {
		r.last[intent] = 0
		return 0
	}
	prev, seen := r.last[intent]
	if !seen || prev >= n {
		idx := r.rng.IntN(n)
		r.last[intent] = idx
		return idx
	}
	// Draw from the n-1 other slots, skipping prev.
	idx := r.rng.IntN(n - 1)
	if idx >= prev {
		idx++
	}
	r.last[intent] = idx
	return idx
}

// Reset clears every cursor.
func (r *Rotator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursors = make(map[domain.Intent]int)
	r.last = make(map[domain.Intent]int)
}
