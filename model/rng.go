package model

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RNG is the single uniform random source shared by every mutation
// heuristic and arbitration policy in the optimization framework. It is
// seeded once from wall-clock time at first use, never reseeded, so that
// a full optimization run is a deterministic function of that one seed.
type RNG struct {
	r *rand.Rand
}

var (
	defaultRNG     *RNG
	defaultRNGOnce sync.Once
)

// Default returns the process-wide shared RNG, constructing and seeding it
// from the wall clock on first call.
func Default() *RNG {
	defaultRNGOnce.Do(func() {
		defaultRNG = NewRNG(uint64(time.Now().UnixNano()))
	})
	return defaultRNG
}

// NewRNG builds an RNG from an explicit seed, primarily for deterministic
// tests that need reproducible sequences.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Int returns a uniform integer in [a,b).
func (g *RNG) Int(a, b int) int {
	if b <= a {
		return a
	}
	return a + g.r.IntN(b-a)
}

// Double returns a uniform float64 in [a,b).
func (g *RNG) Double(a, b float64) float64 {
	if b <= a {
		return a
	}
	return a + g.r.Float64()*(b-a)
}

// Float01 returns a uniform float64 in [0,1).
func (g *RNG) Float01() float64 {
	return g.r.Float64()
}

// Cards draws k distinct integers uniformly from [0,n) via a partial
// Fisher-Yates shuffle. Panics if k > n.
func (g *RNG) Cards(k, n int) []int {
	if k > n {
		panic("model.RNG.Cards: k > n")
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + g.r.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
