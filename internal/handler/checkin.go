package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/rmfontes/pousada-checkin/internal/domain"
)

// guestPayload is one guest in the create request. Field names are the wire
// names the property's form has always submitted.
type guestPayload struct {
	NomeCompleto   string             `json:"nome_completo"`
	DataNascimento openapi_types.Date `json:"data_nascimento"`
	Documento      string             `json:"documento"`
	OrgaoExpedidor string             `json:"orgao_expedidor,omitempty"`
	UFDocumento    string             `json:"uf_documento,omitempty"`
	CPF            string             `json:"cpf,omitempty"`
	Endereco       string             `json:"endereco,omitempty"`
	CEP            string             `json:"cep,omitempty"`
	Cidade         string             `json:"cidade,omitempty"`
	Estado         string             `json:"estado,omitempty"`
	Pais           string             `json:"pais,omitempty"`
	DDD            string             `json:"ddd"`
	Telefone       string             `json:"telefone"`
	Email          string             `json:"email,omitempty"`
	Observacoes    string             `json:"observacoes,omitempty"`
}

// createCheckinRequest is the body of POST /criar-checkin. Companions are an
// explicit ordered list, not the legacy indexed flat keys.
type createCheckinRequest struct {
	NumeroApartamento    string             `json:"numero_apartamento"`
	DataCheckoutPrevista openapi_types.Date `json:"data_checkout_prevista"`
	HospedePrincipal     guestPayload       `json:"hospede_principal"`
	Acompanhantes        []guestPayload     `json:"acompanhantes"`
}

type guestResponse struct {
	ID             uuid.UUID          `json:"id"`
	NomeCompleto   string             `json:"nome_completo"`
	DataNascimento openapi_types.Date `json:"data_nascimento"`
	Idade          int                `json:"idade"`
	Documento      string             `json:"documento"`
	OrgaoExpedidor string             `json:"orgao_expedidor,omitempty"`
	UFDocumento    string             `json:"uf_documento,omitempty"`
	CPF            string             `json:"cpf,omitempty"`
	Endereco       string             `json:"endereco,omitempty"`
	CEP            string             `json:"cep,omitempty"`
	Cidade         string             `json:"cidade,omitempty"`
	Estado         string             `json:"estado,omitempty"`
	Pais           string             `json:"pais,omitempty"`
	DDD            string             `json:"ddd"`
	Telefone       string             `json:"telefone"`
	Email          string             `json:"email,omitempty"`
	Observacoes    string             `json:"observacoes,omitempty"`
	IsPrincipal    bool               `json:"is_principal"`
	CheckinID      uuid.UUID          `json:"checkin_id"`
}

type checkinResponse struct {
	ID                   uuid.UUID           `json:"id"`
	NumeroApartamento    string              `json:"numero_apartamento"`
	DataCheckin          time.Time           `json:"data_checkin"`
	DataCheckoutPrevista *openapi_types.Date `json:"data_checkout_prevista,omitempty"`
	DataCheckout         *time.Time          `json:"data_checkout,omitempty"`
	Status               string              `json:"status"`
	HospedePrincipal     *guestResponse      `json:"hospede_principal"`
	Acompanhantes        []guestResponse     `json:"acompanhantes"`
	TotalHospedes        int                 `json:"total_hospedes"`
}

type checkinListResponse struct {
	Checkins []checkinResponse `json:"checkins"`
}

// finalizarResponse is the body of POST /finalizar-checkin/{id}. Aviso is set
// when the check-in had already been finalized; the record is then returned
// unchanged.
type finalizarResponse struct {
	Checkin checkinResponse `json:"checkin"`
	Aviso   string          `json:"aviso,omitempty"`
}

// CriarCheckin handles POST /criar-checkin.
// Validation failures on the principal guest (or on the check-in fields)
// return 422 and persist nothing. Invalid companions are dropped server-side
// and never fail the request.
func (s *Server) CriarCheckin(w http.ResponseWriter, r *http.Request) {
	var req createCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.checkins.Create(r.Context(), requestToCreateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		slog.ErrorContext(r.Context(), "create checkin failed", "error", err)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, checkinToResponse(created))
}

// ListCheckinsAtivos handles GET /checkins-ativos.
func (s *Server) ListCheckinsAtivos(w http.ResponseWriter, r *http.Request) {
	checkins, err := s.checkins.ListActive(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list active checkins failed", "error", err)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, checkinListResponse{Checkins: checkinsToResponses(checkins)})
}

// GetCheckin handles GET /checkin/{id}.
func (s *Server) GetCheckin(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeNotFound(w, "checkin not found")
		return
	}

	c, err := s.checkins.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "checkin not found")
			return
		}
		slog.ErrorContext(r.Context(), "get checkin failed", "error", err)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, checkinToResponse(c))
}

// FinalizarCheckin handles POST /finalizar-checkin/{id}.
// Finalizing an already-finalized check-in is not an error: the response
// carries the unchanged record plus a warning, mirroring how the front desk
// treats a double checkout.
func (s *Server) FinalizarCheckin(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeNotFound(w, "checkin not found")
		return
	}

	c, err := s.checkins.Finalize(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyFinalized):
			writeJSON(w, http.StatusOK, finalizarResponse{
				Checkin: checkinToResponse(c),
				Aviso:   "este check-in já foi finalizado",
			})
		case errors.Is(err, domain.ErrNotFound):
			writeNotFound(w, "checkin not found")
		default:
			slog.ErrorContext(r.Context(), "finalize checkin failed", "error", err)
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, finalizarResponse{Checkin: checkinToResponse(c)})
}

// --- mapping helpers --------------------------------------------------------

func requestToCreateInput(req createCheckinRequest) domain.CreateCheckinInput {
	in := domain.CreateCheckinInput{
		NumeroApartamento:    req.NumeroApartamento,
		DataCheckoutPrevista: req.DataCheckoutPrevista.Time,
		HospedePrincipal:     payloadToGuestInput(req.HospedePrincipal),
	}
	for _, a := range req.Acompanhantes {
		in.Acompanhantes = append(in.Acompanhantes, payloadToGuestInput(a))
	}
	return in
}

func payloadToGuestInput(p guestPayload) domain.GuestInput {
	return domain.GuestInput{
		NomeCompleto:   p.NomeCompleto,
		DataNascimento: p.DataNascimento.Time,
		Documento:      p.Documento,
		OrgaoExpedidor: p.OrgaoExpedidor,
		UFDocumento:    p.UFDocumento,
		CPF:            p.CPF,
		Endereco:       p.Endereco,
		CEP:            p.CEP,
		Cidade:         p.Cidade,
		Estado:         p.Estado,
		Pais:           p.Pais,
		DDD:            p.DDD,
		Telefone:       p.Telefone,
		Email:          p.Email,
		Observacoes:    p.Observacoes,
	}
}

func guestToResponse(g domain.Guest) guestResponse {
	return guestResponse{
		ID:             g.ID,
		NomeCompleto:   g.NomeCompleto,
		DataNascimento: openapi_types.Date{Time: g.DataNascimento},
		Idade:          g.Idade,
		Documento:      g.Documento,
		OrgaoExpedidor: g.OrgaoExpedidor,
		UFDocumento:    g.UFDocumento,
		CPF:            g.CPF,
		Endereco:       g.Endereco,
		CEP:            g.CEP,
		Cidade:         g.Cidade,
		Estado:         g.Estado,
		Pais:           g.Pais,
		DDD:            g.DDD,
		Telefone:       g.Telefone,
		Email:          g.Email,
		Observacoes:    g.Observacoes,
		IsPrincipal:    g.IsPrincipal,
		CheckinID:      g.CheckinID,
	}
}

// checkinToResponse converts a domain.Checkin into its wire representation,
// partitioning guests into principal and companions via the derived accessors.
func checkinToResponse(c domain.Checkin) checkinResponse {
	resp := checkinResponse{
		ID:                c.ID,
		NumeroApartamento: c.NumeroApartamento,
		DataCheckin:       c.DataCheckin,
		DataCheckout:      c.DataCheckout,
		Status:            c.Status,
		Acompanhantes:     []guestResponse{},
		TotalHospedes:     c.TotalHospedes(),
	}
	if !c.DataCheckoutPrevista.IsZero() {
		d := openapi_types.Date{Time: c.DataCheckoutPrevista}
		resp.DataCheckoutPrevista = &d
	}
	if p := c.HospedePrincipal(); p != nil {
		pr := guestToResponse(*p)
		resp.HospedePrincipal = &pr
	}
	for _, a := range c.Acompanhantes() {
		resp.Acompanhantes = append(resp.Acompanhantes, guestToResponse(a))
	}
	return resp
}

func checkinsToResponses(checkins []domain.Checkin) []checkinResponse {
	out := make([]checkinResponse, len(checkins))
	for i, c := range checkins {
		out[i] = checkinToResponse(c)
	}
	return out
}
