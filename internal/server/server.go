package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plugfox/foxy-fib/api"
	"github.com/plugfox/foxy-fib/internal/calculator"
	"github.com/plugfox/foxy-fib/internal/config"
	"github.com/plugfox/foxy-fib/internal/fib"
	"github.com/plugfox/foxy-fib/internal/log"
	"github.com/plugfox/foxy-fib/internal/model"
)

// ResultLister reads the results ledger.
type ResultLister interface {
	Results(ctx context.Context, limit int) ([]model.Result, error)
	ResultsByN(ctx context.Context, n int64) ([]model.Result, error)
	ResultsByDigest(ctx context.Context, digest string) ([]model.Result, error)
	CountResults(ctx context.Context) (int64, error)
}

type Server struct {
	router *chi.Mux
	public chi.Router
	admin  chi.Router
	server *http.Server
}

// New builds the router. results may be nil when the ledger is disabled.
func New(config *config.Config, logger *slog.Logger, calc *calculator.Calculator, results ResultLister) *Server {
	router := chi.NewRouter()
	router.Use(middlewareErrorRecoverer(logger))
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.NewLogAdapter(logger), NoColor: true}))
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.StripSlashes)
	if config.API.Timeout > 0 {
		router.Use(middleware.Timeout(config.API.Timeout))
	}
	router.Use(middleware.Heartbeat("/ping"))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.NewResponse().NotFound(w)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.NewResponse().MethodNotAllowed(w)
	})

	defaultAlgorithm, err := fib.ParseAlgorithm(config.Fib.Algorithm)
	if err != nil {
		logger.Warn("falling back to the recursive algorithm", slog.String("error", err.Error()))
		defaultAlgorithm = fib.AlgorithmRecursive
	}

	h := &handlers{
		calc:             calc,
		results:          results,
		defaultAlgorithm: defaultAlgorithm,
	}

	// Public API group
	public := router.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)

		r.Get("/fib/table/{limit}", h.table)
		r.Get("/fib/{n}", h.compute)
	})

	// Admin API group
	admin := router.Group(func(r chi.Router) {
		r.Use(middlewareAuthorization(config.Secret))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NoCache)
			r.Get("/results", h.listResults)
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.API.Host, config.API.Port),
		Handler:      router,
		WriteTimeout: config.API.WriteTimeout,
		ReadTimeout:  config.API.ReadTimeout,
		IdleTimeout:  config.API.IdleTimeout,
		ErrorLog:     log.NewLogAdapter(logger),
	}

	return &Server{
		router: router,
		public: public,
		admin:  admin,
		server: server,
	}
}

// AddHealthCheck adds a health check endpoint to the server.
// The statusFunc function should return a map of status information.
// The map keys will be used as the status names in the response.
// The map values will be used as the status values in the response.
func (srv *Server) AddHealthCheck(statusFunc func() (bool, map[string]string)) {
	const bytesInMb = 1024 * 1024

	startedAt := time.Now()

	srv.public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		ok, status := statusFunc()

		var memStats runtime.MemStats

		runtime.ReadMemStats(&memStats)

		data := map[string]any{
			"status": status,
			"uptime": time.Since(startedAt).String(),
			// Allocated memory / Reserved program memory
			"memory":     fmt.Sprintf("%v Mb / %v Mb", memStats.Alloc/bytesInMb, memStats.Sys/bytesInMb),
			"cpu":        runtime.NumCPU(),
			"goroutines": runtime.NumGoroutine(),
		}

		if ok {
			api.NewResponse().SetData(data).Ok(w)
		} else {
			api.NewResponse().SetError("status_error", "One or more services are not healthy", data).InternalServerError(w)
		}
	})
}

// Handler exposes the router, mostly for tests.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// Addr is the address the server listens on.
func (srv *Server) Addr() string {
	return srv.server.Addr
}

// ListenAndServe starts the server and listens for incoming requests.
func (srv *Server) ListenAndServe() error {
	return srv.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server without interrupting any active connections.
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.server.Shutdown(ctx)
}

// Close closes the server immediately.
func (srv *Server) Close() error {
	return srv.server.Close()
}

// middlewareAuthorization is a middleware function that checks the Authorization header for a Bearer token.
// An empty secret locks the group entirely.
func middlewareAuthorization(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				api.NewResponse().SetError("forbidden", "Admin API is disabled").Forbidden(w)

				return
			}

			authHeader := r.Header.Get("Authorization")

			// Check if the Authorization header is missing
			if authHeader == "" {
				api.NewResponse().SetError("unauthorized", "Authorization header is required").Unauthorized(w)

				return
			}

			// Check if the Authorization header is not a Bearer token
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				api.NewResponse().SetError("unauthorized", "Bearer token is required").Unauthorized(w)

				return
			}

			// Check if the Bearer token is invalid
			if token != secret {
				api.NewResponse().SetError("unauthorized", "Invalid Bearer token").Unauthorized(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// middlewareErrorRecoverer is a middleware function that recovers from panics and returns an error response.
func middlewareErrorRecoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if e, ok := err.(error); ok && errors.Is(e, http.ErrAbortHandler) {
						// we don't recover http.ErrAbortHandler so the response
						// to the client is aborted, this should not be logged
						panic(err)
					}

					if r.Header.Get("Connection") == "Upgrade" {
						return
					}

					logger.ErrorContext(r.Context(), "Recovered from panic", slog.String("error", fmt.Sprintf("%v", err)))

					api.NewResponse().SetError("internal_server_error",
						"Internal Server Error",
						map[string]any{
							"error": fmt.Sprintf("%v", err),
							"stack": string(debug.Stack()),
						},
					).InternalServerError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
