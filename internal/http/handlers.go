package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dinero/internal/core"
	applog "dinero/internal/log"
	"dinero/internal/records"
)

// handleDashboard returns every derivation in one response.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	d, err := s.ledger.BuildDashboard(r.Context(), time.Now())
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// handleBalances returns the four bucket balances.
func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ledger, err := s.ledger.Ledger(r.Context())
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}

	b := core.Balances(ledger)
	respondJSON(w, http.StatusOK, struct {
		core.BalanceSnapshot
		Display map[string]string `json:"display"`
	}{
		BalanceSnapshot: b,
		Display: map[string]string{
			"total":   formatEuros(b.Total),
			"card":    formatEuros(b.Card),
			"cash":    formatEuros(b.Cash),
			"savings": formatEuros(b.Savings),
		},
	})
}

// handleSeries returns one cumulative balance track, optionally windowed.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	track, ok := parseTrack(r.URL.Query().Get("track"))
	if !ok {
		respondError(w, http.StatusBadRequest, "track must be 'total' or 'savings'")
		return
	}
	window, ok := parseWindow(r.URL.Query().Get("window"))
	if !ok {
		respondError(w, http.StatusBadRequest, "window must be 'all', 'month' or 'week'")
		return
	}

	ledger, err := s.ledger.Ledger(r.Context())
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}

	points := core.Series(ledger, track, window, time.Now())
	respondJSON(w, http.StatusOK, struct {
		Track  core.Track   `json:"track"`
		Points []core.Point `json:"points"`
	}{Track: track, Points: points})
}

// handleCategories returns the grouped category rollup for one direction.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	dir, ok := parseDirection(r.URL.Query().Get("direction"))
	if !ok {
		respondError(w, http.StatusBadRequest, "direction must be 'expense' or 'income'")
		return
	}
	window, ok := parseWindow(r.URL.Query().Get("window"))
	if !ok {
		respondError(w, http.StatusBadRequest, "window must be 'all', 'month' or 'week'")
		return
	}

	ledger, err := s.ledger.Ledger(r.Context())
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}

	recent := ledger.Windowed(window, time.Now())
	var summary core.CategorySummary
	if strings.EqualFold(r.URL.Query().Get("drilldown"), "comer") {
		summary = core.SummarizeWithin(recent, dir, core.ComerCategories)
	} else {
		summary = core.Summarize(recent, dir, core.ComerCategories)
	}
	respondJSON(w, http.StatusOK, summary)
}

// transactionRow is the listing view of one ledger entry. Sentinel labels
// replace absent selections here, at the presentation boundary.
type transactionRow struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Account     string          `json:"account"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	NewDay      bool            `json:"newDay"`
}

// handleTransactions returns one page of the reverse-chronological listing.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	page := 1
	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			page = p
		}
	}

	ledger, err := s.ledger.Ledger(r.Context())
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}

	p := core.Paginate(ledger, page)
	rows := make([]transactionRow, 0, len(p.Rows))
	for _, row := range p.Rows {
		rows = append(rows, transactionRow{
			ID:          row.ID,
			Description: row.Description,
			Category:    row.CategoryLabel(),
			Account:     row.AccountLabel(),
			Type:        row.TypeLabel(),
			Amount:      row.Amount,
			Timestamp:   row.Timestamp,
			NewDay:      row.NewDay,
		})
	}

	respondJSON(w, http.StatusOK, struct {
		Page       int              `json:"page"`
		TotalPages int              `json:"totalPages"`
		Rows       []transactionRow `json:"rows"`
	}{Page: p.Number, TotalPages: p.TotalPages, Rows: rows})
}

// handleTransactionByID archives one record by its opaque id. The next read
// re-fetches the ledger; nothing is repaired in place.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.ledger.Archive(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Archive failed",
			applog.FieldTransactionID, id, applog.FieldError, err)
		respondError(w, http.StatusBadGateway, "archive failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRefresh rebuilds the ledger, bypassing the fetch cache.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ledger, err := s.ledger.Refresh(r.Context())
	if err != nil {
		s.respondLedgerError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"transactions": len(ledger)})
}

// respondLedgerError maps engine failures onto HTTP statuses. Source and
// data failures are upstream problems, hence 502.
func (s *Server) respondLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Ledger unavailable", applog.FieldError, err)
	switch {
	case errors.Is(err, records.ErrSourceUnavailable):
		respondError(w, http.StatusBadGateway, "record source unavailable")
	case errors.Is(err, core.ErrMalformedRecord):
		respondError(w, http.StatusBadGateway, "record source returned malformed data")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
