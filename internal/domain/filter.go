package domain

import "time"

// HistoryFilter narrows the finalized-checkin history.
// All criteria are optional; the zero value matches every finalized check-in.
// Date bounds are inclusive and compared against the check-in timestamp,
// not the checkout timestamp.
type HistoryFilter struct {
	// Nome restricts results to check-ins whose principal guest's full name
	// contains this substring, case-insensitively. Companion names never match.
	Nome string

	DataInicio *time.Time
	DataFim    *time.Time

	// RawDataInicio and RawDataFim echo the submitted strings unchanged so the
	// filter form can be re-rendered, even when a value failed to parse.
	RawDataInicio string
	RawDataFim    string
}

// ParseHistoryFilter builds a HistoryFilter from raw query parameters.
// Malformed date strings are ignored (the corresponding bound is simply not
// applied), so partial or invalid filter input degrades gracefully instead of
// erroring.
func ParseHistoryFilter(nome, dataInicio, dataFim string) HistoryFilter {
	f := HistoryFilter{
		Nome:          nome,
		RawDataInicio: dataInicio,
		RawDataFim:    dataFim,
	}
	if t, err := time.Parse("2006-01-02", dataInicio); err == nil {
		f.DataInicio = &t
	}
	if t, err := time.Parse("2006-01-02", dataFim); err == nil {
		f.DataFim = &t
	}
	return f
}
