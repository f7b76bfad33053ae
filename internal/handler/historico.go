// History endpoints: the filterable list of finalized check-ins and its CSV
// export. Both run the same filter engine; the list additionally echoes the
// submitted filter values so the client can re-render the filter form.
package handler

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rmfontes/pousada-checkin/internal/domain"
)

// historicoFiltros echoes the raw filter parameters, malformed or not.
type historicoFiltros struct {
	Nome       string `json:"nome"`
	DataInicio string `json:"data_inicio"`
	DataFim    string `json:"data_fim"`
}

type historicoResponse struct {
	Checkins []checkinResponse `json:"checkins"`
	Filtros  historicoFiltros  `json:"filtros"`
}

// csvHeaders defines the column names written as the first row of the export.
var csvHeaders = []string{
	"id", "numero_apartamento", "hospede_principal",
	"data_checkin", "data_checkout_prevista", "data_checkout",
	"total_hospedes",
}

// GetHistorico handles GET /historico?nome=&data_inicio=&data_fim=.
// All parameters are optional; malformed dates are ignored rather than
// rejected, so a partially filled filter form still produces results.
func (s *Server) GetHistorico(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ParseHistoryFilter(q.Get("nome"), q.Get("data_inicio"), q.Get("data_fim"))

	checkins, err := s.checkins.History(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "history query failed", "error", err)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, historicoResponse{
		Checkins: checkinsToResponses(checkins),
		Filtros: historicoFiltros{
			Nome:       filter.Nome,
			DataInicio: filter.RawDataInicio,
			DataFim:    filter.RawDataFim,
		},
	})
}

// ExportHistorico handles GET /historico/export, emitting the filtered
// history as CSV with one row per finalized check-in.
func (s *Server) ExportHistorico(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ParseHistoryFilter(q.Get("nome"), q.Get("data_inicio"), q.Get("data_fim"))

	checkins, err := s.checkins.History(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "history export failed", "error", err)
		writeInternal(w)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer.Write never returns an error.
	//nolint:errcheck
	cw.Write(csvHeaders)
	for _, c := range checkins {
		//nolint:errcheck
		cw.Write(checkinToCSVRecord(c))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="historico.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// checkinToCSVRecord flattens one check-in into a CSV row. The principal
// guest name is empty when the record is inconsistent; optional dates are
// empty strings.
func checkinToCSVRecord(c domain.Checkin) []string {
	principal := ""
	if p := c.HospedePrincipal(); p != nil {
		principal = p.NomeCompleto
	}
	prevista := ""
	if !c.DataCheckoutPrevista.IsZero() {
		prevista = c.DataCheckoutPrevista.Format("2006-01-02")
	}
	return []string{
		c.ID.String(),
		c.NumeroApartamento,
		principal,
		c.DataCheckin.UTC().Format(time.RFC3339),
		prevista,
		formatOptionalTime(c.DataCheckout),
		strconv.Itoa(c.TotalHospedes()),
	}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
