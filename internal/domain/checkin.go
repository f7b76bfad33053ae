// Package domain contains the core data types for the check-in API.
// This package has zero external dependencies (beyond uuid) and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Checkin status values. Stored and serialized exactly as the property's
// legacy system recorded them, so existing data and clients keep working.
const (
	StatusAtivo      = "Ativo"
	StatusFinalizado = "Finalizado"
)

// Checkin represents one apartment stay.
// A check-in is the top-level aggregate; guests belong to a check-in and are
// created and destroyed with it.
//
// Invariants, enforced at creation time by the service layer:
//   - Status == StatusFinalizado exactly when DataCheckout is non-nil.
//   - Exactly one attached guest has IsPrincipal set.
//   - A check-in transitions Ativo → Finalizado at most once; no reopening.
type Checkin struct {
	ID                   uuid.UUID
	NumeroApartamento    string
	DataCheckin          time.Time
	DataCheckoutPrevista time.Time  // zero for rows created before the field existed
	DataCheckout         *time.Time // nil while the stay is active
	Status               string
	Hospedes             []Guest
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HospedePrincipal returns the single guest flagged as principal, or nil when
// the data is inconsistent (no principal attached). It never panics.
func (c *Checkin) HospedePrincipal() *Guest {
	for i := range c.Hospedes {
		if c.Hospedes[i].IsPrincipal {
			return &c.Hospedes[i]
		}
	}
	return nil
}

// Acompanhantes returns all non-principal guests in stored order.
func (c *Checkin) Acompanhantes() []Guest {
	out := make([]Guest, 0, len(c.Hospedes))
	for _, h := range c.Hospedes {
		if !h.IsPrincipal {
			out = append(out, h)
		}
	}
	return out
}

// TotalHospedes returns the total number of attached guests.
func (c *Checkin) TotalHospedes() int {
	return len(c.Hospedes)
}

// CreateCheckinInput carries everything needed to open a stay: the apartment,
// the expected checkout date, the principal guest, and an explicit ordered
// list of companions.
type CreateCheckinInput struct {
	NumeroApartamento    string
	DataCheckoutPrevista time.Time
	HospedePrincipal     GuestInput
	Acompanhantes        []GuestInput
}
