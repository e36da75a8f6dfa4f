// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routeheat

import (
	"errors"
	"iter"
	"math/rand/v2"
	"time"
)

var (
	// ErrInvalidCapacity is returned when a sample of zero or fewer items is
	// requested.
	ErrInvalidCapacity = errors.New("sample size must be positive")

	// ErrNilRandom is returned when no random source is supplied.
	ErrNilRandom = errors.New("random source must not be nil")
)

// Random is the source of randomness used by a Reservoir.  *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	// Float64 returns a uniformly distributed number in [0, 1).
	Float64() float64

	// IntN returns a uniformly distributed number in [0, n).
	IntN(n int) int
}

// NewRandom returns a generator seeded with seed.  A zero seed is replaced by
// the current time.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Reservoir picks a uniformly random subset of fixed size from a stream of
// unknown length, seen once.  After n items have been offered, each of them is
// held with probability k/n.
type Reservoir[T any] struct {
	items []T
	k     int
	seen  int
	rnd   Random
}

// NewReservoir returns a reservoir holding at most k items.
func NewReservoir[T any](k int, rnd Random) (*Reservoir[T], error) {
	if k <= 0 {
		return nil, ErrInvalidCapacity
	}

	if rnd == nil {
		return nil, ErrNilRandom
	}

	return &Reservoir[T]{
		items: make([]T, 0, k),
		k:     k,
		rnd:   rnd,
	}, nil
}

// Offer presents the next item of the stream.
func (r *Reservoir[T]) Offer(item T) {
	r.seen++

	if r.seen <= r.k {
		r.items = append(r.items, item)

		return
	}

	if r.rnd.Float64() < float64(r.k)/float64(r.seen) {
		r.items[r.rnd.IntN(r.k)] = item
	}
}

// Seen returns the number of items offered so far.
func (r *Reservoir[T]) Seen() int {
	return r.seen
}

// Items returns a copy of the current sample.  While fewer than k items have
// been offered, they are returned in arrival order.
func (r *Reservoir[T]) Items() []T {
	items := make([]T, len(r.items))
	copy(items, r.items)

	return items
}

// Sample draws k items uniformly at random from items in a single pass.
func Sample[T any](items iter.Seq[T], k int, rnd Random) ([]T, error) {
	r, err := NewReservoir[T](k, rnd)
	if err != nil {
		return nil, err
	}

	for item := range items {
		r.Offer(item)
	}

	return r.Items(), nil
}
