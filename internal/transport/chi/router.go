package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// RequesterHeader carries the authenticated user id, set by the gateway.
const RequesterHeader = "X-Requester-ID"

// Options configures Handler.
type Options struct {
	BaseRouter  chi.Router
	Middlewares []func(http.Handler) http.Handler
	// ErrorHandlerFunc handles parameter binding errors.
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler mounts the API routes on opts.BaseRouter (a new router if nil).
func Handler(s *Server, opts Options) http.Handler {
	r := opts.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if opts.ErrorHandlerFunc == nil {
		opts.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
		}
	}
	b := &binder{server: s, middlewares: opts.Middlewares, errorHandler: opts.ErrorHandlerFunc}

	r.Get("/v1/search", b.wrap(b.search))
	r.Get("/health", b.wrap(s.HealthCheck))
	r.Get("/metrics", b.wrap(s.Metrics))
	return r
}

// binder decodes request parameters into typed values before calling the server.
type binder struct {
	server       *Server
	middlewares  []func(http.Handler) http.Handler
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (b *binder) wrap(h http.HandlerFunc) http.HandlerFunc {
	var handler http.Handler = h
	for _, mw := range b.middlewares {
		handler = mw(handler)
	}
	return handler.ServeHTTP
}

func (b *binder) search(w http.ResponseWriter, r *http.Request) {
	var params SearchParams
	values := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "q", values, &params.Q); err != nil {
		b.errorHandler(w, r, fmt.Errorf("invalid format for parameter q: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", values, &params.Offset); err != nil {
		b.errorHandler(w, r, fmt.Errorf("invalid format for parameter offset: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", values, &params.Size); err != nil {
		b.errorHandler(w, r, fmt.Errorf("invalid format for parameter size: %w", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "token", values, &params.Token); err != nil {
		b.errorHandler(w, r, fmt.Errorf("invalid format for parameter token: %w", err))
		return
	}

	headers := r.Header.Values(RequesterHeader)
	if len(headers) != 1 {
		b.errorHandler(w, r, fmt.Errorf("header parameter %s is required, and must be single-valued", RequesterHeader))
		return
	}
	err := runtime.BindStyledParameterWithLocation(
		"simple", false, RequesterHeader, runtime.ParamLocationHeader, headers[0], &params.XRequesterID,
	)
	if err != nil {
		b.errorHandler(w, r, fmt.Errorf("invalid format for parameter %s: %w", RequesterHeader, err))
		return
	}

	b.server.Search(w, r, params)
}
