// ABOUTME: Outcome type distinguishing true success from silent fallback
// ABOUTME: Control flow never branches on it; observability does
package models

// Outcome wraps a stage result that is always usable: either the stage
// succeeded, or it degraded to a safe default and Reason says why. The
// pipeline continues identically in both cases.
type Outcome[T any] struct {
	Value    T
	Degraded bool
	Reason   string
}

// Ok wraps a genuine success.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Degrade wraps a fallback value with the reason the stage fell back.
func Degrade[T any](v T, reason string) Outcome[T] {
	return Outcome[T]{Value: v, Degraded: true, Reason: reason}
}
