package converters

import (
	"github.com/plugfox/foxy-fib/api"
	"github.com/plugfox/foxy-fib/internal/model"
)

// Convert a stored result to its API representation.
func ResultToAPI(r *model.Result) *api.Result {
	// If the result is nil then return nil
	if r == nil {
		return nil
	}

	return &api.Result{
		N:          r.N,
		Value:      r.Value,
		Algorithm:  string(r.Algorithm),
		DurationNs: r.Duration.Nanoseconds(),
		Duration:   r.Duration.String(),
		Cached:     r.Cached,
		Hash:       r.Digest,
	}
}

// Convert a list of stored results.
func ResultsToAPI(results []model.Result) []*api.Result {
	converted := make([]*api.Result, 0, len(results))
	for i := range results {
		converted = append(converted, ResultToAPI(&results[i]))
	}
	return converted
}

// Convert a page of stored results together with the ledger size.
func ResultListToAPI(total int64, results []model.Result) *api.ResultList {
	return &api.ResultList{
		Total:   total,
		Results: ResultsToAPI(results),
	}
}

// Convert a table of values.
func TableToAPI(limit int64, values []int64) *api.Table {
	return &api.Table{
		Limit:  limit,
		Values: values,
	}
}
