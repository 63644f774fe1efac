package http

import (
	"strings"

	"github.com/shopspring/decimal"

	"dinero/internal/core"
)

// formatEuros renders an amount the way the dashboard cards show it.
func formatEuros(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

func parseTrack(v string) (core.Track, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "total":
		return core.TrackTotal, true
	case "savings", "ahorros":
		return core.TrackSavings, true
	default:
		return "", false
	}
}

// parseWindow maps the query parameter onto the dashboard windows
// ("Todo", "Último mes", "Última semana").
func parseWindow(v string) (core.Window, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all", "todo":
		return core.AllTime(), true
	case "month":
		return core.LastMonth(), true
	case "week":
		return core.LastWeek(), true
	default:
		return core.Window{}, false
	}
}

func parseDirection(v string) (core.Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "expense":
		return core.DirectionExpense, true
	case "income":
		return core.DirectionIncome, true
	default:
		return "", false
	}
}
