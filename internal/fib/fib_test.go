package fib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecursive(t *testing.T) {
	testcases := []struct {
		Name     string
		N        int64
		Expected int64
	}{
		{Name: "fib(0)", N: 0, Expected: 0},
		{Name: "fib(1)", N: 1, Expected: 1},
		{Name: "fib(2)", N: 2, Expected: 1},
		{Name: "fib(10)", N: 10, Expected: 55},
		{Name: "fib(26)", N: 26, Expected: 121393},
		{Name: "fib(35)", N: 35, Expected: 9227465},
	}

	for _, testcase := range testcases {
		t.Run(testcase.Name, func(t *testing.T) {
			require.Equal(t, testcase.Expected, Recursive(testcase.N))
			require.Equal(t, testcase.Expected, Iterative(testcase.N))
			require.Equal(t, testcase.Expected, Precomputed[testcase.N])
		})
	}
}

func TestRecursiveNegativeReturnsInput(t *testing.T) {
	require.Equal(t, int64(-3), Recursive(-3))
	require.Equal(t, int64(-3), Iterative(-3))
}

func TestPrecomputedMatchesIterative(t *testing.T) {
	for n := int64(0); n <= MaxN; n++ {
		require.Equal(t, Iterative(n), Precomputed[n], "n=%d", n)
	}
	require.Equal(t, int64(7540113804746346429), Precomputed[MaxN])
}

func TestRecurrence(t *testing.T) {
	for n := int64(2); n <= 25; n++ {
		require.Equal(t, Recursive(n-1)+Recursive(n-2), Recursive(n))
	}
}

func TestChecked(t *testing.T) {
	for _, algorithm := range []Algorithm{AlgorithmRecursive, AlgorithmIterative, AlgorithmTable} {
		t.Run(string(algorithm), func(t *testing.T) {
			value, err := Checked(20, algorithm)
			require.NoError(t, err)
			require.Equal(t, int64(6765), value)

			_, err = Checked(-1, algorithm)
			require.ErrorIs(t, err, ErrNegative)

			_, err = Checked(MaxN+1, algorithm)
			require.ErrorIs(t, err, ErrOverflow)
		})
	}

	_, err := Checked(5, Algorithm("memo"))
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParseAlgorithm(t *testing.T) {
	algorithm, err := ParseAlgorithm("")
	require.NoError(t, err)
	require.Equal(t, AlgorithmRecursive, algorithm)

	algorithm, err = ParseAlgorithm(" Iterative ")
	require.NoError(t, err)
	require.Equal(t, AlgorithmIterative, algorithm)

	algorithm, err = ParseAlgorithm("table")
	require.NoError(t, err)
	require.Equal(t, AlgorithmTable, algorithm)

	_, err = ParseAlgorithm("matrix")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestTable(t *testing.T) {
	values, err := Table(10)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}, values)

	values, err = Table(0)
	require.NoError(t, err)
	require.Equal(t, []int64{0}, values)

	// The returned slice must not alias the precomputed table
	values[0] = 42
	require.Equal(t, int64(0), Precomputed[0])

	_, err = Table(MaxN + 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, Recursive(35)))
	require.Equal(t, "9227465\n", buf.String())

	buf.Reset()
	require.NoError(t, Format(&buf, 0))
	require.Equal(t, "0\n", buf.String())
}

func BenchmarkRecursive26(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Recursive(26)
	}
}
