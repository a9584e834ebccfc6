package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapInvalidArgument(t *testing.T) {
	err := WrapInvalidArgument("n", "abc")
	require.True(t, errors.Is(err, ErrorInvalidArgument))
	require.Equal(t, `invalid argument: n="abc"`, err.Error())
}

func TestWrapArgumentTooLarge(t *testing.T) {
	err := WrapArgumentTooLarge("n", 50, 40)
	require.True(t, errors.Is(err, ErrorArgumentTooLarge))
	require.False(t, errors.Is(err, ErrorInvalidArgument))
	require.Equal(t, "argument too large: n=50 exceeds 40", err.Error())
}
