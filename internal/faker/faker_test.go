package faker

import (
	"strings"
	"testing"
)

func TestSameSeedSameText(t *testing.T) {
	a, b := New(42), New(42)
	for _, kind := range []Kind{KindName, KindCompany, KindAddress, KindSentence, KindCity, KindPhrase, KindEmail, KindPhone, KindSecondaryAddress, KindState, KindPostalCode} {
		if x, y := a.Text(kind), b.Text(kind); x != y {
			t.Errorf("%s: %q vs %q", kind, x, y)
		}
	}
}

func TestEmailsAreUnique(t *testing.T) {
	f := New(1)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		e := f.Email()
		if seen[e] {
			t.Fatalf("duplicate email %s", e)
		}
		seen[e] = true
	}
}

func TestSentenceShape(t *testing.T) {
	f := New(3)
	for i := 0; i < 50; i++ {
		s := f.Sentence()
		if !strings.HasSuffix(s, ".") {
			t.Errorf("sentence %q has no period", s)
		}
		if n := len(strings.Fields(s)); n < 4 || n > 10 {
			t.Errorf("sentence %q has %d words", s, n)
		}
	}
}

func TestTextKinds(t *testing.T) {
	f := New(9)
	tests := []struct {
		kind  Kind
		check func(string) bool
	}{
		{KindEmail, func(s string) bool { return strings.Contains(s, "@") }},
		{KindState, func(s string) bool { return len(s) == 2 && strings.ToUpper(s) == s }},
		{KindPostalCode, func(s string) bool { return len(s) == 5 && strings.Trim(s, "0123456789") == "" }},
		{KindSecondaryAddress, func(s string) bool { return s != "" }},
		{KindPhone, func(s string) bool { return s != "" }},
	}
	for _, tt := range tests {
		if got := f.Text(tt.kind); !tt.check(got) {
			t.Errorf("Text(%s) = %q", tt.kind, got)
		}
	}
}
