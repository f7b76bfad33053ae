package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfontes/pousada-checkin/internal/domain"
)

// checkinFixture returns a check-in with one principal and two companions.
func checkinFixture() domain.Checkin {
	return domain.Checkin{
		ID:                uuid.New(),
		NumeroApartamento: "101",
		Status:            domain.StatusAtivo,
		Hospedes: []domain.Guest{
			{ID: uuid.New(), NomeCompleto: "Maria Souza", IsPrincipal: true},
			{ID: uuid.New(), NomeCompleto: "João Souza"},
			{ID: uuid.New(), NomeCompleto: "Ana Souza"},
		},
	}
}

func TestCheckin_HospedePrincipal(t *testing.T) {
	c := checkinFixture()

	p := c.HospedePrincipal()

	require.NotNil(t, p)
	assert.Equal(t, "Maria Souza", p.NomeCompleto)
	assert.True(t, p.IsPrincipal)
}

func TestCheckin_HospedePrincipal_NoneAttached(t *testing.T) {
	// Inconsistent data must yield nil, not a panic.
	c := domain.Checkin{Hospedes: []domain.Guest{{NomeCompleto: "Ana"}}}

	assert.Nil(t, c.HospedePrincipal())
}

func TestCheckin_HospedePrincipal_NoGuests(t *testing.T) {
	c := domain.Checkin{}

	assert.Nil(t, c.HospedePrincipal())
}

func TestCheckin_Acompanhantes_PreservesStoredOrder(t *testing.T) {
	c := checkinFixture()

	companions := c.Acompanhantes()

	require.Len(t, companions, 2)
	assert.Equal(t, "João Souza", companions[0].NomeCompleto)
	assert.Equal(t, "Ana Souza", companions[1].NomeCompleto)
}

func TestCheckin_Acompanhantes_Empty(t *testing.T) {
	c := domain.Checkin{Hospedes: []domain.Guest{{NomeCompleto: "Maria", IsPrincipal: true}}}

	assert.Empty(t, c.Acompanhantes())
	assert.NotNil(t, c.Acompanhantes())
}

func TestCheckin_TotalHospedes(t *testing.T) {
	c := checkinFixture()

	assert.Equal(t, 3, c.TotalHospedes())
	// guestCount == 1 + len(companions) for a well-formed check-in.
	assert.Equal(t, 1+len(c.Acompanhantes()), c.TotalHospedes())
}
