package dice

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/greygale/moonvale/internal/dice Roller

// Roller provides the randomness used by events and the orchestrator.
// Everything chance-based in the game goes through a Roller so tests can
// seed or mock it.
type Roller interface {
	// Chance returns true with probability p (0.0 to 1.0)
	Chance(p float64) bool

	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Float64 returns a uniform value in [0.0, 1.0)
	Float64() float64
}

// Config for the default roller
type Config struct {
	// Optional seed for deterministic runs
	Seed int64
}

type roller struct {
	random *rand.Rand
}

// New creates a seedable roller. A zero seed falls back to the wall clock.
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

func (r *roller) Chance(p float64) bool {
	return r.random.Float64() < p
}

func (r *roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.random.Intn(n)
}

func (r *roller) Float64() float64 {
	return r.random.Float64()
}

// Pick returns a uniformly chosen element of items, or the zero value when
// items is empty.
func Pick[T any](r Roller, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Intn(len(items))]
}

// Shuffle returns a new slice with the items in random order.
func Shuffle[T any](r Roller, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
