package domain

import (
	"time"

	"github.com/google/uuid"
)

// Guest represents one person on a stay. Guests are created only as part of a
// check-in, never updated, and destroyed only when their check-in is destroyed.
//
// Idade is a snapshot computed from DataNascimento at creation time. It is
// stored, not recomputed on read, so it reflects the guest's age at check-in.
type Guest struct {
	ID             uuid.UUID
	NomeCompleto   string
	DataNascimento time.Time
	Idade          int
	Documento      string
	OrgaoExpedidor string // document-issuing authority, optional
	UFDocumento    string // issuing-region code, optional
	CPF            string // national tax id, optional
	Endereco       string
	CEP            string
	Cidade         string
	Estado         string
	Pais           string
	DDD            string
	Telefone       string
	Email          string
	Observacoes    string
	IsPrincipal    bool
	CheckinID      uuid.UUID
	CreatedAt      time.Time
}

// GuestInput holds the raw submitted fields for one guest, before validation.
// The json tags double as the wire names reported in validation messages.
type GuestInput struct {
	NomeCompleto   string    `json:"nome_completo" validate:"required"`
	DataNascimento time.Time `json:"data_nascimento" validate:"required"`
	Documento      string    `json:"documento" validate:"required"`
	OrgaoExpedidor string    `json:"orgao_expedidor"`
	UFDocumento    string    `json:"uf_documento"`
	CPF            string    `json:"cpf"`
	Endereco       string    `json:"endereco"`
	CEP            string    `json:"cep"`
	Cidade         string    `json:"cidade"`
	Estado         string    `json:"estado"`
	Pais           string    `json:"pais"`
	DDD            string    `json:"ddd" validate:"required"`
	Telefone       string    `json:"telefone" validate:"required"`
	Email          string    `json:"email"`
	Observacoes    string    `json:"observacoes"`
}

// AgeAt returns the whole-year age of someone born on birth as of the date on.
// One year is subtracted when on's (month, day) precedes birth's (month, day),
// i.e. the birthday has not yet happened that year.
func AgeAt(birth, on time.Time) int {
	age := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		age--
	}
	return age
}
