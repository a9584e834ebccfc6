package timer

import (
	"fmt"
	"time"
)

// Timed - a value together with the time it took to produce it
type Timed[T any] struct {
	Value    T
	Duration time.Duration
	Tag      string
}

// Time calls f and measures how long it took.
func Time[T any](tag string, f func() T) Timed[T] {
	start := time.Now()
	value := f()
	return Timed[T]{
		Value:    value,
		Duration: time.Since(start),
		Tag:      tag,
	}
}

// TimeErr is Time for functions that can fail.
func TimeErr[T any](tag string, f func() (T, error)) (Timed[T], error) {
	start := time.Now()
	value, err := f()
	return Timed[T]{
		Value:    value,
		Duration: time.Since(start),
		Tag:      tag,
	}, err
}

// String - "<tag> duration: <duration>"
func (t Timed[T]) String() string {
	return fmt.Sprintf("%s duration: %s", t.Tag, t.Duration)
}

// StringWithValue - "<tag> duration: <duration> with value <value>"
func (t Timed[T]) StringWithValue() string {
	return fmt.Sprintf("%s duration: %s with value %v", t.Tag, t.Duration, t.Value)
}
