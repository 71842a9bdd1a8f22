package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type HandleErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// HandlerFunc is an HTTP handler that reports its failure instead of writing
// the error response itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func toHTTPHandlerFunc(handler HandlerFunc, errorHandler HandleErrorFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			errorHandler(w, r, err)
		}
	}
}

func (a *HostApi) routes(opts *RunOptions) (chi.Router, error) {
	r := chi.NewRouter()

	if opts.UseRealIPMiddleware {
		r.Use(middleware.RealIP)
	}
	if opts.CollectMetrics {
		r.Use(chiHttpApiGeneralMetricsMiddleware)
	}
	if opts.RateLimiterOpts != nil {
		rateLimiter, err := createRateLimiter(opts.RateLimiterOpts)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		r.Use(rateLimiter.RateLimit)
	}
	if opts.LogHttpRequests {
		r.Use(middleware.RequestID, CreateLoggerMiddleware(zap.L()))
	}
	if opts.RouteNotFoundHandler != nil {
		r.NotFound(opts.RouteNotFoundHandler)
	}

	if opts.EnableHeartbeatRoute {
		r.Get("/host/healthz", func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte("OK")); err != nil {
				zap.S().Errorf("Can't write 'OK' to ResponseWriter: %+v", err)
				w.WriteHeader(http.StatusInternalServerError)
			}
		})
	}

	errHandler := NewErrorHandler(zap.L())
	wrapper := func(handlerFunc HandlerFunc) http.HandlerFunc {
		return toHTTPHandlerFunc(handlerFunc, errHandler.Handle)
	}

	r.Group(func(r chi.Router) {
		r.Use(JsonContentTypeMiddleware)

		r.Route("/calc", func(r chi.Router) {
			r.Post("/evaluate", wrapper(a.EvaluateInstruction))
			r.Post("/invoke", wrapper(a.Invoke))
			r.Post("/encode", wrapper(a.EncodeInstruction))
			r.Get("/operations", wrapper(a.Operations))
		})

		r.Route("/host", func(r chi.Router) {
			r.Get("/status", wrapper(a.Status))
		})
	})

	return r, nil
}
