package dataset

// Optional marks a field that may be absent. Absent is distinct from the
// zero value: an empty string is blank text, not a missing value.
type Optional[T any] struct {
	Val   T
	Valid bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Val: v, Valid: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
