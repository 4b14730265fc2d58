// Package idgen formats fixed-width, prefixed, zero-padded identifiers.
package idgen

import (
	"fmt"
	"math"
)

// Kind is the identifier shape of one entity type.
type Kind struct {
	Prefix string
	Width  int
}

var (
	Product    = Kind{Prefix: "PRD", Width: 6}
	Recipe     = Kind{Prefix: "RCP", Width: 6}
	Customer   = Kind{Prefix: "CUS", Width: 7}
	Order      = Kind{Prefix: "ORD", Width: 8}
	Shipment   = Kind{Prefix: "SHP", Width: 8}
	Return     = Kind{Prefix: "RET", Width: 8}
	Waste      = Kind{Prefix: "WST", Width: 8}
	Inspection = Kind{Prefix: "QC", Width: 8}
)

// Capacity is the largest index that still fits in Width digits.
func (k Kind) Capacity() int {
	return int(math.Pow10(k.Width)) - 1
}

// Format returns prefix + zero-padded 1-based index.
func Format(k Kind, index int) string {
	return fmt.Sprintf("%s%0*d", k.Prefix, k.Width, index)
}

// Line returns the identifier of the n-th child line of parent, e.g. ORD00000001-003.
func Line(parent string, n int) string {
	return fmt.Sprintf("%s-%03d", parent, n)
}

// Allocator hands out sequential identifiers per kind. It is not safe for
// concurrent use; a run owns exactly one.
type Allocator struct {
	next map[string]int
}

func NewAllocator() *Allocator {
	return &Allocator{next: make(map[string]int)}
}

// Next allocates the following identifier of kind k.
func (a *Allocator) Next(k Kind) (string, error) {
	n := a.next[k.Prefix] + 1
	if n > k.Capacity() {
		return "", fmt.Errorf("identifier space of %s exhausted at %d", k.Prefix, k.Capacity())
	}
	a.next[k.Prefix] = n
	return Format(k, n), nil
}

// Issued returns how many identifiers of kind k were allocated since the last Reset.
func (a *Allocator) Issued(k Kind) int {
	return a.next[k.Prefix]
}

// Reset clears every counter. Called at the start of a run.
func (a *Allocator) Reset() {
	a.next = make(map[string]int)
}
