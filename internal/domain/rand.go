package domain

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness used for source shuffling and candidate picks.
// Injectable so tests can supply deterministic orderings.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// lockedRand guards a math/rand source so the display path and a background
// refill can draw from the same Rand without racing.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// NewRand returns a time-seeded, mutex-guarded Rand.
func NewRand() Rand {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}
