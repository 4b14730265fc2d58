// Package random holds the single seeded source every entity generator draws
// from. A fixed seed and a fixed call sequence yield the same values.
package random

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/faker"
	"github.com/shopspring/decimal"
)

// Source wraps a PCG stream for numeric draws plus an independently seeded
// faker for realistic text.
type Source struct {
	seed uint64
	rng  *rand.Rand
	fake *faker.Faker
}

func New(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets both streams. All later draws depend only on value.
func (s *Source) Seed(value int64) {
	s.seed = uint64(value)
	s.rng = rand.New(rand.NewPCG(s.seed, 0x9e3779b97f4a7c15))
	s.fake = faker.New(s.seed ^ 0xda942042e4dd58b5)
}

// Uniform returns a float in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Int returns an integer in [lo, hi], both ends inclusive.
func (s *Source) Int(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("random: Int(%d, %d): empty range", lo, hi))
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Decimal draws Uniform(lo, hi) and rounds it to places.
func (s *Source) Decimal(lo, hi float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(s.Uniform(lo, hi)).Round(places)
}

// DaysBefore returns ref minus a whole number of days in [lo, hi].
func (s *Source) DaysBefore(ref time.Time, lo, hi int) time.Time {
	return ref.AddDate(0, 0, -s.Int(lo, hi))
}

// TimeOfDay returns day truncated to midnight plus a random second of the day.
func (s *Source) TimeOfDay(day time.Time) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(s.rng.IntN(86400)) * time.Second)
}

// Text draws realistic text of the given kind. Every generated name,
// address and free-text field comes from here.
func (s *Source) Text(kind faker.Kind) string {
	return s.fake.Text(kind)
}

// Choice picks uniformly from options.
func Choice[T any](s *Source, options []T) T {
	if len(options) == 0 {
		panic("random: Choice from empty slice")
	}
	return options[s.rng.IntN(len(options))]
}

// Weighted pairs an option with its relative weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedChoice picks an option with probability proportional to its weight.
func WeightedChoice[T any](s *Source, options []Weighted[T]) T {
	var total float64
	for _, o := range options {
		total += o.Weight
	}
	if len(options) == 0 || total <= 0 {
		panic("random: WeightedChoice needs at least one positive weight")
	}
	r := s.rng.Float64() * total
	for _, o := range options {
		if r < o.Weight {
			return o.Value
		}
		r -= o.Weight
	}
	return options[len(options)-1].Value
}

// Sample returns k distinct elements of population in draw order.
// k larger than the population is clamped.
func Sample[T any](s *Source, population []T, k int) []T {
	if k > len(population) {
		k = len(population)
	}
	pool := make([]T, len(population))
	copy(pool, population)
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
