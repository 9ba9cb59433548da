package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/domain"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/omnisearch/internal/logger"
	healthuc "github.com/kailas-cloud/omnisearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/omnisearch/internal/usecase/search"
)

// StatusClientClosedRequest is written when the client went away before the
// search finished. Nobody reads it; it keeps access logs and metrics honest.
const StatusClientClosedRequest = 499

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Pagination bounds the server applies before the query layer clamps.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

// Server serves the search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	pagination    Pagination
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	pagination Pagination,
	logger *zap.Logger,
) *Server {
	if pagination.MaxSize <= 0 || pagination.MaxSize > query.MaxPageSize {
		pagination.MaxSize = query.MaxPageSize
	}
	if pagination.DefaultSize <= 0 || pagination.DefaultSize > pagination.MaxSize {
		pagination.DefaultSize = min(query.DefaultPageSize, pagination.MaxSize)
	}
	s := &Server{
		search:     search,
		health:     health,
		pagination: pagination,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeInvalidQuery),
		unavailableHandler,
	}
	return s
}

// Search handles GET /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request, params SearchParams) {
	offset, size := 0, s.pagination.DefaultSize
	if params.Offset != nil {
		offset = *params.Offset
	}
	if params.Size != nil && *params.Size > 0 {
		size = min(*params.Size, s.pagination.MaxSize)
	}

	page, err := query.NewPage(offset, size)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	q, err := query.New(deref(params.Q), params.XRequesterID, page, deref(params.Token))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToAPI(&resp.Results[i])
	}
	var failed []string
	for _, t := range resp.Failed {
		failed = append(failed, t.String())
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Results: items,
		Total:   resp.Total,
		Offset:  page.Offset,
		Size:    page.Size,
		Partial: resp.Partial,
		Failed:  failed,
		Token:   resp.Token,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a message for the client without exposing internals.
// Validation messages are safe; they only describe the request.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return err.Error()
	case errors.Is(err, domain.ErrSearchUnavailable):
		return domain.ErrSearchUnavailable.Error()
	default:
		return "internal error"
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// unavailableHandler maps a total retrieval failure to a retryable 503.
func unavailableHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		return false
	}
	w.Header().Set("Retry-After", "1")
	writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
		Code:      ErrorCodeSearchUnavailable,
		Message:   msg,
		Retryable: true,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	if errors.Is(err, context.Canceled) {
		log.Debug("client closed request", zap.Error(err))
		w.WriteHeader(StatusClientClosedRequest)
		return
	}
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func resultToAPI(r *result.Result) SearchResultItem {
	c := r.Candidate()
	item := SearchResultItem{
		Type:        r.Type().String(),
		ID:          r.ID(),
		Name:        c.Name,
		Username:    c.Username,
		ImageURL:    c.ImageURL,
		Description: c.Description,
		Score:       r.Score(),
		Rank:        r.Rank(),
		MatchKind:   string(r.MatchKind()),
	}

	if r.Type() == entity.Parent {
		mutuals := c.MutualCount
		item.Metadata = ResultMetadata{
			FollowStatus: string(c.FollowStatus),
			Visibility:   string(c.Visibility),
			MutualCount:  &mutuals,
		}
		if c.Visibility.ExposesPrivateFields() {
			item.Metadata.Bio = c.Contact.Bio
			item.Metadata.Phone = c.Contact.Phone
			item.Metadata.Location = c.Contact.Location
		}
		return item
	}

	rating, reviews := c.Rating, c.ReviewCount
	item.Metadata = ResultMetadata{Rating: &rating, ReviewCount: &reviews}
	return item
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
