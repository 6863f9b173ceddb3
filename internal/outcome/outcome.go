// Package outcome defines the uniform return shape shared by every document
// parser and response extractor, so the orchestrators on both pipelines can
// apply identical fallback logic.
package outcome

// Status tags an Outcome.
type Status int

const (
	// StatusSuccess means the extractor produced a complete value.
	StatusSuccess Status = iota
	// StatusPartial means a usable value was produced but some expected
	// parts were absent; MissingFields names them.
	StatusPartial
	// StatusFailure means nothing usable was produced; Reason says why.
	StatusFailure
)

// Outcome is a tagged variant: Success(T), Partial(T, missing) or
// Failure(reason).
type Outcome[T any] struct {
	Status        Status
	Value         T
	MissingFields []string
	Reason        string
}

// Success wraps a complete value.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{Status: StatusSuccess, Value: v}
}

// Partial wraps a usable value with the names of absent parts.
func Partial[T any](v T, missing []string) Outcome[T] {
	return Outcome[T]{Status: StatusPartial, Value: v, MissingFields: missing}
}

// Failure reports that no usable value was produced.
func Failure[T any](reason string) Outcome[T] {
	return Outcome[T]{Status: StatusFailure, Reason: reason}
}

// Usable reports whether the outcome carries a value (Success or Partial).
func (o Outcome[T]) Usable() bool {
	return o.Status != StatusFailure
}

// Failed reports whether the outcome is a Failure.
func (o Outcome[T]) Failed() bool {
	return o.Status == StatusFailure
}
