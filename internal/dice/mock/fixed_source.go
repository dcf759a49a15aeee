package mockdice

import (
	"sync"
)

// FixedSource implements dice.Source, replaying queued values.
// When a queue is exhausted its last value repeats; an empty queue yields 0.
type FixedSource struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

// NewFixedSource creates a source returning the given Float64 draws
func NewFixedSource(floats ...float64) *FixedSource {
	return &FixedSource{floats: floats}
}

// WithInts queues Intn results (each is reduced modulo n)
func (f *FixedSource) WithInts(ints ...int) *FixedSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ints = ints
	return f
}

// Float64 implements dice.Source
func (f *FixedSource) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.floats) == 0 {
		return 0
	}
	v := f.floats[0]
	if len(f.floats) > 1 {
		f.floats = f.floats[1:]
	}
	return v
}

// Intn implements dice.Source
func (f *FixedSource) Intn(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[0]
	if len(f.ints) > 1 {
		f.ints = f.ints[1:]
	}
	return v % n
}
