package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTimestamp is assigned to records the source stores without a
// creation time. It is a fixed constant, never "now", so normalization stays
// a pure function of its input.
var DefaultTimestamp = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrMalformedRecord marks a raw record whose amount is missing or not a
// number. One malformed record fails the whole fetch: a partial ledger
// produces misleading balances, which is worse than a visible error.
var ErrMalformedRecord = errors.New("malformed record")

type (
	// Choice is an optional select value on a raw record. Valid is false
	// when the source has no selection.
	Choice struct {
		Name  string
		Valid bool
	}

	// RawRecord is the source-shaped view of one transaction, before
	// normalization. Title holds the rich-text runs of the description in
	// order; a zero CreatedAt means the source omitted the timestamp.
	RawRecord struct {
		ID        string
		Title     []string
		Category  Choice
		Account   Choice
		Type      Choice
		Amount    decimal.NullDecimal
		CreatedAt time.Time
	}
)

// Normalize converts one raw record into a canonical Transaction:
// description runs are concatenated, missing selects stay empty (the "None"
// sentinel is a display concern), the timestamp is stripped to a naive UTC
// wall clock or defaulted, and expense amounts are negated exactly once.
func Normalize(r RawRecord) (Transaction, error) {
	if !r.Amount.Valid {
		return Transaction{}, fmt.Errorf("%w: record %q has no amount", ErrMalformedRecord, r.ID)
	}

	t := Transaction{
		ID:          r.ID,
		Description: strings.Join(r.Title, ""),
		Amount:      r.Amount.Decimal,
		Timestamp:   DefaultTimestamp,
	}
	if r.Category.Valid {
		t.Category = r.Category.Name
	}
	if r.Account.Valid {
		t.Account = r.Account.Name
	}
	if r.Type.Valid {
		t.Type = r.Type.Name
	}
	if !r.CreatedAt.IsZero() {
		t.Timestamp = r.CreatedAt.UTC()
	}

	// The source stores amounts as entered; only the Expense type flips the
	// sign, and only here, so it can never be negated twice downstream.
	if t.Type == TypeExpense {
		t.Amount = t.Amount.Neg()
	}

	return t, nil
}

// NormalizeAll converts a fetched batch into a sorted Ledger. The first
// malformed record aborts the whole batch.
func NormalizeAll(recs []RawRecord) (Ledger, error) {
	txs := make([]Transaction, 0, len(recs))
	for _, r := range recs {
		t, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return NewLedger(txs), nil
}
