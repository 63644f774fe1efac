package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountCard    = "Tarjeta"
	AccountCash    = "Efectivo"
	AccountSavings = "Ahorros"

	TypeExpense = "Expense"
	TypeIncome  = "Income"
	TypeSavings = "Ahorros"

	// NoneLabel is the display sentinel for a record with no selection.
	// Internally an absent category/account/type is the empty string; the
	// sentinel only appears at the presentation boundary.
	NoneLabel = "None"
)

type (
	// Transaction is one normalized ledger entry. Immutable once built:
	// every derivation reads it, none rewrites it.
	Transaction struct {
		ID          string
		Description string
		Category    string // empty when the source has no selection
		Account     string
		Type        string
		Amount      decimal.Decimal // negative for expenses after normalization
		Timestamp   time.Time       // naive, UTC wall clock
	}

	// Ledger is the full transaction history, ascending by timestamp.
	Ledger []Transaction
)

// CategoryLabel returns the category name, or the "None" sentinel when the
// source record had no selection.
func (t Transaction) CategoryLabel() string { return orNone(t.Category) }

// AccountLabel returns the account name or the "None" sentinel.
func (t Transaction) AccountLabel() string { return orNone(t.Account) }

// TypeLabel returns the type name or the "None" sentinel.
func (t Transaction) TypeLabel() string { return orNone(t.Type) }

func orNone(s string) string {
	if s == "" {
		return NoneLabel
	}
	return s
}

// NewLedger copies the transactions and sorts them ascending by timestamp.
// The sort is stable: entries with equal timestamps keep their retrieval
// order. Every derivation assumes this ordering.
func NewLedger(txs []Transaction) Ledger {
	l := make(Ledger, len(txs))
	copy(l, txs)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Timestamp.Before(l[j].Timestamp)
	})
	return l
}

// Windowed returns a new ledger holding only the transactions the window
// admits, evaluated against now. The receiver is not modified.
func (l Ledger) Windowed(w Window, now time.Time) Ledger {
	out := make(Ledger, 0, len(l))
	for _, t := range l {
		if w.contains(t.Timestamp, now) {
			out = append(out, t)
		}
	}
	return out
}
