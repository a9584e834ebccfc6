package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/plugfox/foxy-fib/api"
	"github.com/plugfox/foxy-fib/internal/calculator"
	"github.com/plugfox/foxy-fib/internal/converters"
	ferrors "github.com/plugfox/foxy-fib/internal/errors"
	"github.com/plugfox/foxy-fib/internal/fib"
	"github.com/plugfox/foxy-fib/internal/model"
)

const defaultResultsLimit = 100

type handlers struct {
	calc             *calculator.Calculator
	results          ResultLister
	defaultAlgorithm fib.Algorithm
}

// GET /fib/{n}?algorithm=recursive|iterative|table
func (h *handlers) compute(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "n")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, ferrors.WrapInvalidArgument("n", raw))

		return
	}

	algorithm := h.defaultAlgorithm
	if name := r.URL.Query().Get("algorithm"); name != "" {
		if algorithm, err = fib.ParseAlgorithm(name); err != nil {
			writeError(w, err)

			return
		}
	}

	result, err := h.calc.Compute(r.Context(), n, algorithm, model.SourceHTTP)
	if err != nil {
		writeError(w, err)

		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &api.Response{Status: "ok", Data: converters.ResultToAPI(result)})
}

// GET /fib/table/{limit}
func (h *handlers) table(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "limit")
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, ferrors.WrapInvalidArgument("limit", raw))

		return
	}

	values, err := h.calc.Table(r.Context(), limit)
	if err != nil {
		writeError(w, err)

		return
	}

	api.NewResponse().SetData(converters.TableToAPI(limit, values)).Ok(w)
}

// GET /admin/results?limit=N, ?n=N or ?hash=H
func (h *handlers) listResults(w http.ResponseWriter, r *http.Request) {
	if h.results == nil {
		api.NewResponse().SetError("not_found", "Results ledger is disabled").NotFound(w)

		return
	}

	query := r.URL.Query()
	var (
		results []model.Result
		err     error
	)
	switch {
	case query.Get("n") != "":
		raw := query.Get("n")
		n, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || n < 0 {
			writeError(w, ferrors.WrapInvalidArgument("n", raw))

			return
		}
		results, err = h.results.ResultsByN(r.Context(), n)
	case query.Get("hash") != "":
		results, err = h.results.ResultsByDigest(r.Context(), query.Get("hash"))
	default:
		limit := defaultResultsLimit
		if raw := query.Get("limit"); raw != "" {
			parsed, parseErr := strconv.Atoi(raw)
			if parseErr != nil || parsed < 0 {
				writeError(w, ferrors.WrapInvalidArgument("limit", raw))

				return
			}
			limit = parsed
		}
		results, err = h.results.Results(r.Context(), limit)
	}
	if err != nil {
		api.NewResponse().SetError("storage_error", err.Error()).InternalServerError(w)

		return
	}

	total, err := h.results.CountResults(r.Context())
	if err != nil {
		api.NewResponse().SetError("storage_error", err.Error()).InternalServerError(w)

		return
	}

	api.NewResponse().SetData(converters.ResultListToAPI(total, results)).Ok(w)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ferrors.ErrorInvalidArgument), errors.Is(err, fib.ErrUnknownAlgorithm), errors.Is(err, fib.ErrNegative):
		api.NewResponse().SetError("bad_request", err.Error()).BadRequest(w)
	case errors.Is(err, fib.ErrOverflow), errors.Is(err, ferrors.ErrorArgumentTooLarge):
		api.NewResponse().SetError("out_of_range", err.Error()).UnprocessableEntity(w)
	default:
		api.NewResponse().SetError("internal_server_error", err.Error()).InternalServerError(w)
	}
}
