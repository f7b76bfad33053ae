package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfontes/pousada-checkin/internal/domain"
	"github.com/rmfontes/pousada-checkin/internal/repo"
	"github.com/rmfontes/pousada-checkin/internal/service"
)

// ---- mock repo -------------------------------------------------------------

// mockCheckinRepo is a hand-written test double for repo.CheckinRepo.
type mockCheckinRepo struct {
	create        func(ctx context.Context, checkin domain.Checkin, guests []domain.Guest) (domain.Checkin, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Checkin, error)
	listActive    func(ctx context.Context) ([]domain.Checkin, error)
	listFinalized func(ctx context.Context, filter domain.HistoryFilter) ([]domain.Checkin, error)
	finalize      func(ctx context.Context, id uuid.UUID) (domain.Checkin, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCheckinRepo) Create(ctx context.Context, checkin domain.Checkin, guests []domain.Guest) (domain.Checkin, error) {
	return m.create(ctx, checkin, guests)
}
func (m *mockCheckinRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Checkin, error) {
	return m.getByID(ctx, id)
}
func (m *mockCheckinRepo) ListActive(ctx context.Context) ([]domain.Checkin, error) {
	return m.listActive(ctx)
}
func (m *mockCheckinRepo) ListFinalized(ctx context.Context, filter domain.HistoryFilter) ([]domain.Checkin, error) {
	return m.listFinalized(ctx, filter)
}
func (m *mockCheckinRepo) Finalize(ctx context.Context, id uuid.UUID) (domain.Checkin, error) {
	return m.finalize(ctx, id)
}
func (m *mockCheckinRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockCheckinRepo must satisfy repo.CheckinRepo.
var _ repo.CheckinRepo = (*mockCheckinRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validGuestInput() domain.GuestInput {
	return domain.GuestInput{
		NomeCompleto:   "Maria Souza",
		DataNascimento: time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC),
		Documento:      "MG-12.345.678",
		DDD:            "31",
		Telefone:       "99999-1234",
		Email:          "maria@example.com",
		Pais:           "Brasil",
	}
}

func validCreateInput() domain.CreateCheckinInput {
	return domain.CreateCheckinInput{
		NumeroApartamento:    "12",
		DataCheckoutPrevista: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		HospedePrincipal:     validGuestInput(),
	}
}

// ---- Create ----------------------------------------------------------------

func TestCheckinService_Create_OK(t *testing.T) {
	var gotGuests []domain.Guest
	svc := service.NewCheckinService(&mockCheckinRepo{
		create: func(_ context.Context, c domain.Checkin, guests []domain.Guest) (domain.Checkin, error) {
			gotGuests = guests
			c.ID = uuid.New()
			c.Status = domain.StatusAtivo
			c.Hospedes = guests
			return c, nil
		},
	})

	created, err := svc.Create(context.Background(), validCreateInput())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, domain.StatusAtivo, created.Status)
	require.Len(t, gotGuests, 1)
	assert.True(t, gotGuests[0].IsPrincipal)
	assert.Equal(t, "Maria Souza", gotGuests[0].NomeCompleto)
}

func TestCheckinService_Create_AgeSnapshot(t *testing.T) {
	var gotGuests []domain.Guest
	svc := service.NewCheckinService(&mockCheckinRepo{
		create: func(_ context.Context, c domain.Checkin, guests []domain.Guest) (domain.Checkin, error) {
			gotGuests = guests
			return c, nil
		},
	})

	in := validCreateInput()
	in.HospedePrincipal.DataNascimento = time.Now().AddDate(-30, 0, -1)

	_, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, gotGuests, 1)
	assert.Equal(t, 30, gotGuests[0].Idade)
}

func TestCheckinService_Create_MissingApartment(t *testing.T) {
	svc := service.NewCheckinService(&mockCheckinRepo{
		create: func(context.Context, domain.Checkin, []domain.Guest) (domain.Checkin, error) {
			t.Fatal("repo.Create must not be called")
			return domain.Checkin{}, nil
		},
	})

	in := validCreateInput()
	in.NumeroApartamento = "  "

	_, err := svc.Create(context.Background(), in)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "numero_apartamento")
}

func TestCheckinService_Create_MissingCheckoutPrevista(t *testing.T) {
	svc := service.NewCheckinService(&mockCheckinRepo{
		create: func(context.Context, domain.Checkin, []domain.Guest) (domain.Checkin, error) {
			t.Fatal("repo.Create must not be called")
			return domain.Checkin{}, nil
		},
	})

	in := validCreateInput()
	in.DataCheckoutPrevista = time.Time{}

	_, err := svc.Create(context.Background(), in)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "data_checkout_prevista")
}

func TestCheckinService_Create_InvalidPrincipalAborts(t *testing.T) {
	svc := service.NewCheckinService(&mockCheckinRepo{
		create: func(context.Context, domain.Checkin, []domain.Guest) (domain.Checkin, error) {
			t.Fatal("repo.Create must not be called when the principal fails validation")
			return domain.Checkin{}, nil
		},
	})

	in := validCreateInput()
	in.HospedePrincipal.Documento = ""

	_, err := svc.Create(context.Background(), in)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "documento")
}

func TestCheckinService_Create_InvalidCompanionSkipped(t *testing.T) {
	var gotGuests []domain.Guest
	svc := service.NewCheckinService(&mockCheckinRepo{
		create: func(_ context.Context, c domain.Checkin, guests []domain.Guest) (domain.Checkin, error) {
			gotGuests = guests
			return c, nil
		},
	})

	valid := validGuestInput()
	valid.NomeCompleto = "Ana Lima"
	invalid := validGuestInput()
	invalid.NomeCompleto = ""

	in := validCreateInput()
	in.Acompanhantes = []domain.GuestInput{invalid, valid}

	_, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, gotGuests, 2)
	assert.True(t, gotGuests[0].IsPrincipal)
	assert.Equal(t, "Ana Lima", gotGuests[1].NomeCompleto)
	assert.False(t, gotGuests[1].IsPrincipal)
}

func TestCheckinService_Create_RepoError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := service.NewCheckinService(&mockCheckinRepo{
		create: func(context.Context, domain.Checkin, []domain.Guest) (domain.Checkin, error) {
			return domain.Checkin{}, boom
		},
	})

	_, err := svc.Create(context.Background(), validCreateInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

// ---- Finalize --------------------------------------------------------------

func TestCheckinService_Finalize_OK(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	svc := service.NewCheckinService(&mockCheckinRepo{
		finalize: func(_ context.Context, got uuid.UUID) (domain.Checkin, error) {
			assert.Equal(t, id, got)
			return domain.Checkin{ID: got, Status: domain.StatusFinalizado, DataCheckout: &now}, nil
		},
	})

	c, err := svc.Finalize(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinalizado, c.Status)
	require.NotNil(t, c.DataCheckout)
}

func TestCheckinService_Finalize_AlreadyFinalizedKeepsRecord(t *testing.T) {
	id := uuid.New()
	earlier := time.Now().Add(-24 * time.Hour)
	svc := service.NewCheckinService(&mockCheckinRepo{
		finalize: func(_ context.Context, got uuid.UUID) (domain.Checkin, error) {
			return domain.Checkin{ID: got, Status: domain.StatusFinalizado, DataCheckout: &earlier},
				domain.ErrAlreadyFinalized
		},
	})

	c, err := svc.Finalize(context.Background(), id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	// The unchanged record travels with the error so the handler can return it.
	assert.Equal(t, id, c.ID)
	require.NotNil(t, c.DataCheckout)
	assert.True(t, c.DataCheckout.Equal(earlier))
}

func TestCheckinService_Finalize_NotFound(t *testing.T) {
	svc := service.NewCheckinService(&mockCheckinRepo{
		finalize: func(context.Context, uuid.UUID) (domain.Checkin, error) {
			return domain.Checkin{}, domain.ErrNotFound
		},
	})

	_, err := svc.Finalize(context.Background(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- reads -----------------------------------------------------------------

func TestCheckinService_ListActive_NonNilOnEmpty(t *testing.T) {
	svc := service.NewCheckinService(&mockCheckinRepo{
		listActive: func(context.Context) ([]domain.Checkin, error) {
			return nil, nil
		},
	})

	checkins, err := svc.ListActive(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, checkins)
	assert.Empty(t, checkins)
}

func TestCheckinService_GetByID_NotFound(t *testing.T) {
	svc := service.NewCheckinService(&mockCheckinRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Checkin, error) {
			return domain.Checkin{}, domain.ErrNotFound
		},
	})

	_, err := svc.GetByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckinService_History_PassesFilter(t *testing.T) {
	var gotFilter domain.HistoryFilter
	svc := service.NewCheckinService(&mockCheckinRepo{
		listFinalized: func(_ context.Context, f domain.HistoryFilter) ([]domain.Checkin, error) {
			gotFilter = f
			return nil, nil
		},
	})

	filter := domain.ParseHistoryFilter("maria", "2026-01-01", "2026-01-31")
	checkins, err := svc.History(context.Background(), filter)

	require.NoError(t, err)
	assert.NotNil(t, checkins)
	assert.Equal(t, "maria", gotFilter.Nome)
	require.NotNil(t, gotFilter.DataInicio)
	require.NotNil(t, gotFilter.DataFim)
}
