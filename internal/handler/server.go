// Package handler implements the HTTP handlers for the check-in API.
// All handlers are methods on Server. Methods are split into files by
// concern (checkin.go, historico.go, form.go, health.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmfontes/pousada-checkin/internal/domain"
	"github.com/rmfontes/pousada-checkin/spec"
)

// CheckinServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type CheckinServicer interface {
	Create(ctx context.Context, in domain.CreateCheckinInput) (domain.Checkin, error)
	Finalize(ctx context.Context, id uuid.UUID) (domain.Checkin, error)
	ListActive(ctx context.Context) ([]domain.Checkin, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Checkin, error)
	History(ctx context.Context, filter domain.HistoryFilter) ([]domain.Checkin, error)
}

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	checkins CheckinServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(checkins CheckinServicer) *Server {
	return &Server{checkins: checkins}
}

// Routes returns the chi router with every API endpoint registered.
// Mount it at "/" in main.go after the shared middleware stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/novo-checkin", s.GetNovoCheckin)
	r.Get("/checkins-ativos", s.ListCheckinsAtivos)
	r.Get("/historico", s.GetHistorico)
	r.Get("/historico/export", s.ExportHistorico)
	r.Get("/checkin/{id}", s.GetCheckin)
	r.Post("/criar-checkin", s.CriarCheckin)
	r.Post("/finalizar-checkin/{id}", s.FinalizarCheckin)

	return r
}

// GetOpenAPI handles GET /openapi.yaml, serving the embedded API description.
// Serving it from the binary means the spec and the running code are always
// in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
