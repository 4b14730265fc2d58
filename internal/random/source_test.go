package random

import (
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/synthgen/internal/faker"
)

func drawSequence(s *Source) []any {
	out := []any{
		s.Uniform(0, 10),
		s.Int(1, 100),
		s.Chance(0.5),
		s.Decimal(5, 500, 2).String(),
		Choice(s, []string{"a", "b", "c"}),
		WeightedChoice(s, []Weighted[string]{{"x", 0.8}, {"y", 0.2}}),
		s.Text(faker.KindName),
		s.Text(faker.KindSentence),
	}
	for _, v := range Sample(s, []int{1, 2, 3, 4, 5, 6}, 3) {
		out = append(out, v)
	}
	return out
}

func TestSameSeedSameSequence(t *testing.T) {
	a := drawSequence(New(42))
	b := drawSequence(New(42))
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("draw %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestReseedRestartsSequence(t *testing.T) {
	s := New(7)
	first := drawSequence(s)
	s.Seed(7)
	second := drawSequence(s)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs after reseed: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 20; i++ {
		if a.Int(0, 1_000_000) == b.Int(0, 1_000_000) {
			same++
		}
	}
	if same == 20 {
		t.Error("expected different seeds to produce different draws")
	}
}

func TestIntInclusiveBounds(t *testing.T) {
	s := New(3)
	seenLo, seenHi := false, false
	for i := 0; i < 2000; i++ {
		v := s.Int(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("Int(3, 5) returned %d", v)
		}
		seenLo = seenLo || v == 3
		seenHi = seenHi || v == 5
	}
	if !seenLo || !seenHi {
		t.Errorf("expected both bounds to be drawn, lo=%v hi=%v", seenLo, seenHi)
	}
}

func TestWeightedChoiceFollowsWeights(t *testing.T) {
	s := New(11)
	opts := []Weighted[string]{{"Pass", 0.80}, {"Fail", 0.10}, {"Conditional Pass", 0.05}, {"Re-inspection Required", 0.05}}
	counts := map[string]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[WeightedChoice(s, opts)]++
	}
	pass := float64(counts["Pass"]) / n
	if pass < 0.77 || pass > 0.83 {
		t.Errorf("Pass share = %.3f, want about 0.80", pass)
	}
	if counts["Re-inspection Required"] == 0 {
		t.Error("expected the smallest weight to be drawn at least once")
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	s := New(5)
	pop := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i := 0; i < 100; i++ {
		got := Sample(s, pop, 5)
		if len(got) != 5 {
			t.Fatalf("len = %d, want 5", len(got))
		}
		seen := map[string]bool{}
		for _, v := range got {
			if seen[v] {
				t.Fatalf("duplicate %q in sample %v", v, got)
			}
			seen[v] = true
		}
	}
	if got := Sample(s, pop, 50); len(got) != len(pop) {
		t.Errorf("oversized sample len = %d, want %d", len(got), len(pop))
	}
	if pop[0] != "a" || pop[6] != "g" {
		t.Error("Sample must not reorder the caller's slice")
	}
}

func TestDaysBeforeAndTimeOfDay(t *testing.T) {
	s := New(9)
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		d := s.DaysBefore(ref, 1, 730)
		days := int(ref.Sub(d).Hours() / 24)
		if days < 1 || days > 730 {
			t.Fatalf("DaysBefore gave %d days", days)
		}
		ts := s.TimeOfDay(d)
		if ts.Year() != d.Year() || ts.YearDay() != d.YearDay() {
			t.Fatalf("TimeOfDay moved the date: %v -> %v", d, ts)
		}
	}
}
