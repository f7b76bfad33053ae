// Package service contains the business logic for the check-in API.
// Services validate inputs, enforce lifecycle rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rmfontes/pousada-checkin/internal/domain"
	"github.com/rmfontes/pousada-checkin/internal/repo"
)

// CheckinService implements the check-in lifecycle: creation with principal
// and companions, finalization (checkout), and the read queries.
type CheckinService struct {
	repo     repo.CheckinRepo
	validate *validator.Validate
}

// NewCheckinService constructs a CheckinService backed by the provided repo.
func NewCheckinService(r repo.CheckinRepo) *CheckinService {
	v := validator.New()
	// Report wire names (json tags) instead of Go field names in messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CheckinService{repo: r, validate: v}
}

// Create validates and persists a new check-in with its guests in one
// transaction.
//
// The principal guest must validate: any failure aborts the whole operation
// and nothing is persisted. Companions are validated independently and a
// failing companion is skipped with a warning log rather than aborting,
// a leniency carried over from the property's existing workflow.
func (s *CheckinService) Create(ctx context.Context, in domain.CreateCheckinInput) (domain.Checkin, error) {
	if strings.TrimSpace(in.NumeroApartamento) == "" {
		return domain.Checkin{}, fmt.Errorf("%w: numero_apartamento is required", domain.ErrValidation)
	}
	if in.DataCheckoutPrevista.IsZero() {
		return domain.Checkin{}, fmt.Errorf("%w: data_checkout_prevista is required", domain.ErrValidation)
	}

	principal, err := s.buildGuest(in.HospedePrincipal, true)
	if err != nil {
		return domain.Checkin{}, fmt.Errorf("service.CheckinService.Create: principal: %w", err)
	}

	guests := []domain.Guest{principal}
	for i, c := range in.Acompanhantes {
		g, err := s.buildGuest(c, false)
		if err != nil {
			slog.WarnContext(ctx, "companion record skipped",
				"posicao", i,
				"error", err,
			)
			continue
		}
		guests = append(guests, g)
	}

	created, err := s.repo.Create(ctx, domain.Checkin{
		NumeroApartamento:    in.NumeroApartamento,
		DataCheckoutPrevista: in.DataCheckoutPrevista,
	}, guests)
	if err != nil {
		return domain.Checkin{}, fmt.Errorf("service.CheckinService.Create: %w", err)
	}
	return created, nil
}

// Finalize transitions a check-in from Ativo to Finalizado, stamping the
// checkout time. When the check-in is already finalized it returns the
// unchanged record together with domain.ErrAlreadyFinalized so callers can
// surface a warning instead of an error. Returns domain.ErrNotFound for
// unknown ids.
func (s *CheckinService) Finalize(ctx context.Context, id uuid.UUID) (domain.Checkin, error) {
	c, err := s.repo.Finalize(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyFinalized) {
			return c, fmt.Errorf("service.CheckinService.Finalize: %w", err)
		}
		return domain.Checkin{}, fmt.Errorf("service.CheckinService.Finalize: %w", err)
	}
	return c, nil
}

// ListActive returns all active check-ins with guests attached.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CheckinService) ListActive(ctx context.Context) ([]domain.Checkin, error) {
	checkins, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CheckinService.ListActive: %w", err)
	}
	if checkins == nil {
		return []domain.Checkin{}, nil
	}
	return checkins, nil
}

// GetByID returns the full check-in aggregate.
// Returns domain.ErrNotFound if no check-in with that ID exists.
func (s *CheckinService) GetByID(ctx context.Context, id uuid.UUID) (domain.Checkin, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Checkin{}, fmt.Errorf("service.CheckinService.GetByID: %w", err)
	}
	return c, nil
}

// History returns finalized check-ins matching the filter, newest first.
// Malformed filter input has already been dropped by ParseHistoryFilter, so
// the query never fails on bad user dates.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CheckinService) History(ctx context.Context, filter domain.HistoryFilter) ([]domain.Checkin, error) {
	checkins, err := s.repo.ListFinalized(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.CheckinService.History: %w", err)
	}
	if checkins == nil {
		return []domain.Checkin{}, nil
	}
	return checkins, nil
}

// buildGuest turns raw guest input into a Guest value object: required fields
// checked, age snapshotted from the birth date. It is a pure transform; no
// persistence happens here.
func (s *CheckinService) buildGuest(in domain.GuestInput, isPrincipal bool) (domain.Guest, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Guest{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, verrs[0].Field())
		}
		return domain.Guest{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return domain.Guest{
		NomeCompleto:   in.NomeCompleto,
		DataNascimento: in.DataNascimento,
		Idade:          domain.AgeAt(in.DataNascimento, time.Now()),
		Documento:      in.Documento,
		OrgaoExpedidor: in.OrgaoExpedidor,
		UFDocumento:    in.UFDocumento,
		CPF:            in.CPF,
		Endereco:       in.Endereco,
		CEP:            in.CEP,
		Cidade:         in.Cidade,
		Estado:         in.Estado,
		Pais:           in.Pais,
		DDD:            in.DDD,
		Telefone:       in.Telefone,
		Email:          in.Email,
		Observacoes:    in.Observacoes,
		IsPrincipal:    isPrincipal,
	}, nil
}
