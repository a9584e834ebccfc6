package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateMatchesCommittedTable(t *testing.T) {
	src, err := generate()
	require.NoError(t, err)

	committed, err := os.ReadFile("../../internal/fib/table_gen.go")
	require.NoError(t, err)
	require.Equal(t, string(committed), string(src))
}
