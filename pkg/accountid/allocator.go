// Package accountid produces collision-avoiding account identifiers.
package accountid

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
)

// Account ids are 6-digit numeric strings
const (
	idMin = 100000
	idMax = 999999
)

// ExistenceChecker is the account-existence oracle consulted during allocation
type ExistenceChecker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// Allocator generates account identifiers unused at allocation time. It owns
// its randomness source; there is no package-global state.
//
// The generate-check sequence is not atomic against concurrent allocators:
// the storage layer's unique constraint on the id is the authoritative guard,
// and callers retry allocation on a persistence-level conflict.
type Allocator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	checker ExistenceChecker
}

// NewAllocator creates an allocator with a time-seeded source
func NewAllocator(checker ExistenceChecker) *Allocator {
	seed := uint64(time.Now().UnixNano())
	return NewAllocatorWithSource(checker, rand.NewPCG(seed, seed>>17))
}

// NewAllocatorWithSource creates an allocator with an injected source.
// Used by tests to make allocation deterministic.
func NewAllocatorWithSource(checker ExistenceChecker, src rand.Source) *Allocator {
	return &Allocator{
		rng:     rand.New(src),
		checker: checker,
	}
}

// Allocate returns a 6-digit id the oracle reports as unused. It retries on
// collision without an upper bound: termination holds as long as the used-id
// count stays below the 900000-value keyspace, and expected retries are
// negligible at the platform's utilization.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := strconv.Itoa(a.next())
		used, err := a.checker.ExistsByID(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}
}

func (a *Allocator) next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return idMin + a.rng.IntN(idMax-idMin+1)
}
