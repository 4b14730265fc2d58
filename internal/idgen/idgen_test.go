package idgen

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		kind  Kind
		index int
		want  string
	}{
		{Product, 1, "PRD000001"},
		{Product, 1000, "PRD001000"},
		{Customer, 1, "CUS0000001"},
		{Order, 10000, "ORD00010000"},
		{Inspection, 42, "QC00000042"},
		{Recipe, 999999, "RCP999999"},
	}
	for _, tt := range tests {
		if got := Format(tt.kind, tt.index); got != tt.want {
			t.Errorf("Format(%s, %d) = %q, want %q", tt.kind.Prefix, tt.index, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	if got := Line("ORD00000007", 3); got != "ORD00000007-003" {
		t.Errorf("Line = %q", got)
	}
}

func TestAllocatorSequentialPerKind(t *testing.T) {
	a := NewAllocator()
	for i := 1; i <= 3; i++ {
		id, err := a.Next(Product)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if want := Format(Product, i); id != want {
			t.Errorf("product %d = %q, want %q", i, id, want)
		}
	}
	id, err := a.Next(Customer)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if id != "CUS0000001" {
		t.Errorf("first customer = %q, want CUS0000001", id)
	}
	if a.Issued(Product) != 3 || a.Issued(Customer) != 1 {
		t.Errorf("issued = %d/%d, want 3/1", a.Issued(Product), a.Issued(Customer))
	}

	a.Reset()
	id, _ = a.Next(Product)
	if id != "PRD000001" {
		t.Errorf("after Reset got %q, want PRD000001", id)
	}
}

func TestAllocatorExhaustion(t *testing.T) {
	tiny := Kind{Prefix: "T", Width: 1}
	a := NewAllocator()
	for i := 0; i < 9; i++ {
		if _, err := a.Next(tiny); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if _, err := a.Next(tiny); err == nil {
		t.Error("expected exhaustion error for the tenth identifier")
	}
}

func TestCapacity(t *testing.T) {
	if Product.Capacity() != 999999 {
		t.Errorf("Product capacity = %d", Product.Capacity())
	}
	if Customer.Capacity() != 9999999 {
		t.Errorf("Customer capacity = %d", Customer.Capacity())
	}
}
