package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/plugfox/foxy-fib/internal/calculator"
	ferrors "github.com/plugfox/foxy-fib/internal/errors"
	"github.com/plugfox/foxy-fib/internal/fib"
	"github.com/plugfox/foxy-fib/internal/model"
)

// maxTableLines keeps /table replies within a single message.
const maxTableLines = 30

const helpText = `/fib <n> [recursive|iterative|table] - the nth Fibonacci number
/table <limit> - fib(0) through fib(limit)`

type commands struct {
	calc             *calculator.Calculator
	defaultAlgorithm fib.Algorithm
}

// fibReply answers "/fib <n> [algorithm]".
func (cmd *commands) fibReply(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "Usage: /fib <n> [recursive|iterative|table]"
	}

	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return describe(ferrors.WrapInvalidArgument("n", args[0]))
	}

	algorithm := cmd.defaultAlgorithm
	if len(args) > 1 {
		if algorithm, err = fib.ParseAlgorithm(args[1]); err != nil {
			return describe(err)
		}
	}

	result, err := cmd.calc.Compute(ctx, n, algorithm, model.SourceTelegram)
	if err != nil {
		return describe(err)
	}

	return fmt.Sprintf("fib(%d) = %d", result.N, result.Value)
}

// tableReply answers "/table <limit>".
func (cmd *commands) tableReply(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "Usage: /table <limit>"
	}

	limit, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return describe(ferrors.WrapInvalidArgument("limit", args[0]))
	}
	if limit >= maxTableLines {
		return describe(ferrors.WrapArgumentTooLarge("limit", limit, maxTableLines-1))
	}

	values, err := cmd.calc.Table(ctx, limit)
	if err != nil {
		return describe(err)
	}

	var sb strings.Builder
	for i, value := range values {
		fmt.Fprintf(&sb, "fib(%d) = %d\n", i, value)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// describe turns an error into a user-facing reply.
func describe(err error) string {
	switch {
	case errors.Is(err, ferrors.ErrorInvalidArgument):
		return "Please send a whole number."
	case errors.Is(err, fib.ErrNegative):
		return "n must not be negative."
	case errors.Is(err, fib.ErrOverflow):
		return fmt.Sprintf("n must not exceed %d.", fib.MaxN)
	case errors.Is(err, ferrors.ErrorArgumentTooLarge):
		return "That number is too large: " + err.Error()
	case errors.Is(err, fib.ErrUnknownAlgorithm):
		return "Unknown algorithm, use recursive, iterative or table."
	default:
		return "Something went wrong."
	}
}
