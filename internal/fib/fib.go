// Package fib evaluates Fibonacci numbers under the convention fib(0)=0, fib(1)=1.
package fib

//go:generate go run ../../tools/gentable -out table_gen.go

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxN is the largest n whose Fibonacci number fits into an int64.
const MaxN = 92

// Algorithm selects how a Fibonacci number is evaluated.
type Algorithm string

const (
	AlgorithmRecursive Algorithm = "recursive" // Exponential double recursion.
	AlgorithmIterative Algorithm = "iterative" // Linear loop.
	AlgorithmTable     Algorithm = "table"     // Lookup into Precomputed.
)

var (
	ErrNegative         = errors.New("n must not be negative")
	ErrOverflow         = errors.New("result overflows int64")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// ParseAlgorithm - parse the algorithm name, empty string means recursive
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", AlgorithmRecursive:
		return AlgorithmRecursive, nil
	case AlgorithmIterative:
		return AlgorithmIterative, nil
	case AlgorithmTable:
		return AlgorithmTable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Recursive computes fib(n) by naive double recursion without memoization.
// It does not check its input: n > MaxN overflows silently.
func Recursive(n int64) int64 {
	if n <= 1 {
		return n
	}
	return Recursive(n-2) + Recursive(n-1)
}

// Iterative computes fib(n) in linear time.
func Iterative(n int64) int64 {
	if n <= 1 {
		return n
	}
	a, b := int64(0), int64(1)
	for i := int64(1); i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// Validate - check that fib(n) is representable
func Validate(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegative, n)
	}
	if n > MaxN {
		return fmt.Errorf("%w: n=%d exceeds %d", ErrOverflow, n, MaxN)
	}
	return nil
}

// Checked validates n and evaluates fib(n) with the given algorithm.
func Checked(n int64, algorithm Algorithm) (int64, error) {
	if err := Validate(n); err != nil {
		return 0, err
	}

	switch algorithm {
	case AlgorithmRecursive:
		return Recursive(n), nil
	case AlgorithmIterative:
		return Iterative(n), nil
	case AlgorithmTable:
		return Precomputed[n], nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// Table returns fib(0) through fib(limit).
func Table(limit int64) ([]int64, error) {
	if err := Validate(limit); err != nil {
		return nil, err
	}

	values := make([]int64, limit+1)
	copy(values, Precomputed[:limit+1])
	return values, nil
}

// Format writes the decimal value followed by a newline.
func Format(w io.Writer, value int64) error {
	_, err := io.WriteString(w, strconv.FormatInt(value, 10)+"\n")
	return err
}
