// Package httpapi exposes the decision engine over HTTP. It is the
// outer glue layer: handlers translate between JSON and domain types
// and hold no evaluation logic of their own.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/fairlens/fairlens/infrastructure/journal"
	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// DecisionReader provides read access to stored decisions.
type DecisionReader interface {
	Decision(id string) (domain.Decision, error)
	Decisions() []domain.Decision
	Verify(id string) (bool, error)
}

// ApplicationSource provides loan applications for processing.
type ApplicationSource interface {
	Load(count int) ([]domain.Record, error)
	ByID(applicationID string) (domain.Record, error)
}

// Explainer produces natural language explanations of decisions.
type Explainer interface {
	Explain(ctx context.Context, decision domain.Decision, mode, query string) (string, error)
}

// ReportGenerator renders decisions as PDF documents.
type ReportGenerator interface {
	Generate(decision domain.Decision) ([]byte, error)
}

// Server wires the decision engine's components to HTTP routes.
type Server struct {
	processor    ports.DecisionProcessor
	decisions    DecisionReader
	applications ApplicationSource

	explainer Explainer
	reporter  ReportGenerator
	journal   *journal.Log
	timeline  *journal.Timeline
	metrics   http.Handler
	logger    *zap.Logger
}

// Option customizes optional server collaborators.
type Option func(*Server)

// WithExplainer enables the explanation endpoint.
func WithExplainer(explainer Explainer) Option {
	return func(s *Server) { s.explainer = explainer }
}

// WithReporter enables the PDF report endpoint.
func WithReporter(reporter ReportGenerator) Option {
	return func(s *Server) { s.reporter = reporter }
}

// WithJournal enables the analysis journal endpoint.
func WithJournal(log *journal.Log) Option {
	return func(s *Server) { s.journal = log }
}

// WithTimeline enables the per-application timeline endpoint.
func WithTimeline(timeline *journal.Timeline) Option {
	return func(s *Server) { s.timeline = timeline }
}

// WithMetricsHandler mounts the given handler at /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(s *Server) { s.metrics = handler }
}

// WithLogger sets the request logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates an HTTP server front for the decision engine.
func NewServer(
	processor ports.DecisionProcessor,
	decisions DecisionReader,
	applications ApplicationSource,
	opts ...Option,
) *Server {
	s := &Server{
		processor:    processor,
		decisions:    decisions,
		applications: applications,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router with all enabled endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/applications", s.handleApplications)
		r.Post("/process", s.handleProcess)
		r.Get("/decisions", s.handleDecisions)
		r.Get("/decisions/{id}", s.handleDecision)
		r.Get("/decisions/{id}/verify", s.handleVerify)
		r.Get("/decisions/{id}/report", s.handleReport)
		r.Post("/explain", s.handleExplain)
		r.Get("/journal", s.handleJournal)
		r.Get("/timeline/{applicationID}", s.handleTimeline)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("encoding response", zap.Error(err))
	}
}

// respondError maps domain errors to HTTP status codes. Unknown-entity
// errors become 404, configuration and validation errors become 400,
// everything else is a 500 with the detail kept out of the response.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnknownApplication),
		errors.Is(err, domain.ErrUnknownDecision),
		errors.Is(err, domain.ErrUnknownFramework):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidConfiguration),
		errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	default:
		s.logger.Error("request failed", zap.Error(err))
		message = "internal server error"
	}
	s.respondJSON(w, status, errorBody{Error: message})
}
