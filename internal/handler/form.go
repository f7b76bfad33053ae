package handler

import (
	"net/http"

	"github.com/rmfontes/pousada-checkin/internal/countries"
)

type paisResponse struct {
	Pais       string `json:"pais"`
	CodigoPais string `json:"codigo_pais"`
}

type novoCheckinResponse struct {
	Paises []paisResponse `json:"paises"`
}

// GetNovoCheckin handles GET /novo-checkin.
// Rendering lives in the client; this endpoint supplies the data the
// check-in form needs, currently the country picker with dialing codes.
func (s *Server) GetNovoCheckin(w http.ResponseWriter, _ *http.Request) {
	all := countries.All()
	paises := make([]paisResponse, len(all))
	for i, c := range all {
		paises[i] = paisResponse{Pais: c.Pais, CodigoPais: c.CodigoPais}
	}
	writeJSON(w, http.StatusOK, novoCheckinResponse{Paises: paises})
}
