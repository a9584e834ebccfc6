package calculator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/plugfox/foxy-fib/internal/cache"
	"github.com/plugfox/foxy-fib/internal/config"
	ferrors "github.com/plugfox/foxy-fib/internal/errors"
	"github.com/plugfox/foxy-fib/internal/fib"
	"github.com/plugfox/foxy-fib/internal/model"
	"github.com/stretchr/testify/require"
)

type recorderStub struct {
	mu      sync.Mutex
	results []*model.Result
	err     error
}

func (r *recorderStub) SaveResult(_ context.Context, result *model.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, result)
	return nil
}

type metricsStub struct {
	mu     sync.Mutex
	cached []bool
}

func (m *metricsStub) LogEvent(_ string, _ map[string]string, _ map[string]interface{}) {}

func (m *metricsStub) LogComputation(_ string, _ string, _ int64, _ time.Duration, cached bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = append(m.cached, cached)
}

func (m *metricsStub) Close() {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompute(t *testing.T) {
	testcases := []struct {
		Name      string
		N         int64
		Algorithm fib.Algorithm
		Expected  int64
	}{
		{Name: "Recursive 26", N: 26, Algorithm: fib.AlgorithmRecursive, Expected: 121393},
		{Name: "Recursive 35", N: 35, Algorithm: fib.AlgorithmRecursive, Expected: 9227465},
		{Name: "Iterative 92", N: 92, Algorithm: fib.AlgorithmIterative, Expected: 7540113804746346429},
		{Name: "Table 10", N: 10, Algorithm: fib.AlgorithmTable, Expected: 55},
	}

	recorder := &recorderStub{}
	calc := New(discardLogger(), WithRecorder(recorder))

	for _, testcase := range testcases {
		t.Run(testcase.Name, func(t *testing.T) {
			result, err := calc.Compute(context.Background(), testcase.N, testcase.Algorithm, model.SourceCLI)
			require.NoError(t, err)
			require.Equal(t, testcase.Expected, result.Value)
			require.Equal(t, testcase.N, result.N)
			require.Equal(t, testcase.Algorithm, result.Algorithm)
			require.Equal(t, model.SourceCLI, result.Source)
			require.False(t, result.Cached)
		})
	}

	require.Len(t, recorder.results, len(testcases))
}

func TestComputeErrors(t *testing.T) {
	calc := New(discardLogger(), WithMaxRecursive(40))
	ctx := context.Background()

	_, err := calc.Compute(ctx, 41, fib.AlgorithmRecursive, model.SourceHTTP)
	require.ErrorIs(t, err, ferrors.ErrorArgumentTooLarge)

	// The cap applies to the recursive algorithm only
	result, err := calc.Compute(ctx, 41, fib.AlgorithmIterative, model.SourceHTTP)
	require.NoError(t, err)
	require.Equal(t, int64(165580141), result.Value)

	_, err = calc.Compute(ctx, -1, fib.AlgorithmIterative, model.SourceHTTP)
	require.ErrorIs(t, err, fib.ErrNegative)

	_, err = calc.Compute(ctx, 93, fib.AlgorithmTable, model.SourceHTTP)
	require.ErrorIs(t, err, fib.ErrOverflow)
}

func TestComputeUsesCache(t *testing.T) {
	c, err := cache.New(&config.CacheConfig{MaxCost: 100, NumCounters: 1000})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	m := &metricsStub{}
	recorder := &recorderStub{}
	calc := New(discardLogger(), WithCache(c), WithMetrics(m), WithRecorder(recorder))
	ctx := context.Background()

	first, err := calc.Compute(ctx, 30, fib.AlgorithmRecursive, model.SourceHTTP)
	require.NoError(t, err)
	require.False(t, first.Cached)
	c.Wait()

	second, err := calc.Compute(ctx, 30, fib.AlgorithmRecursive, model.SourceHTTP)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Value, second.Value)

	require.Equal(t, []bool{false, true}, m.cached)
	require.Len(t, recorder.results, 1, "cache hits are not recorded")
}

func TestComputeRecorderFailureIsNotFatal(t *testing.T) {
	calc := New(discardLogger(), WithRecorder(&recorderStub{err: errors.New("disk full")}))

	result, err := calc.Compute(context.Background(), 10, fib.AlgorithmRecursive, model.SourceCLI)
	require.NoError(t, err)
	require.Equal(t, int64(55), result.Value)
}

func TestTable(t *testing.T) {
	calc := New(discardLogger())

	values, err := calc.Table(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 1, 2, 3, 5}, values)

	_, err = calc.Table(context.Background(), -1)
	require.ErrorIs(t, err, fib.ErrNegative)
}
