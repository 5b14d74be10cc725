package galaxy

import (
	"math/rand"
	"time"
)

// Source supplies uniform samples in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded source. Equal seeds give equal galaxies.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// TimeSeed is the seed used when none is given.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}
