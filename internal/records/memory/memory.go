// Package memory implements the record source in process, for development
// and tests.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"dinero/internal/core"
	"dinero/internal/records"
)

const defaultBatchSize = 50

// Store is an in-memory record source. Cursors are plain offsets into the
// record slice.
type Store struct {
	mu    sync.Mutex
	batch int
	recs  []core.RawRecord
}

// New builds a store seeded with the given records.
func New(recs []core.RawRecord) *Store {
	s := &Store{batch: defaultBatchSize}
	s.recs = append(s.recs, recs...)
	return s
}

// SetBatchSize overrides the page size handed out by FetchPage.
func (s *Store) SetBatchSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.batch = n
	}
}

// FetchPage returns the next slice of records starting at the cursor offset.
func (s *Store) FetchPage(_ context.Context, cursor string) (records.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 || n > len(s.recs) {
			return records.Batch{}, fmt.Errorf("invalid cursor %q", cursor)
		}
		start = n
	}

	end := start + s.batch
	if end > len(s.recs) {
		end = len(s.recs)
	}

	batch := records.Batch{
		Records: append([]core.RawRecord(nil), s.recs[start:end]...),
		HasMore: end < len(s.recs),
	}
	if batch.HasMore {
		batch.NextCursor = strconv.Itoa(end)
	}
	return batch, nil
}

// Archive removes the record with the given id.
func (s *Store) Archive(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.recs {
		if r.ID == id {
			s.recs = append(s.recs[:i], s.recs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record %q not found", id)
}

// NewDemo returns a store with a small seeded ledger so the server runs
// without remote credentials.
func NewDemo() *Store {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
	}
	rec := func(id, desc, category, account, typ string, amount float64, ts time.Time) core.RawRecord {
		return core.RawRecord{
			ID:        id,
			Title:     []string{desc},
			Category:  core.Choice{Name: category, Valid: category != ""},
			Account:   core.Choice{Name: account, Valid: account != ""},
			Type:      core.Choice{Name: typ, Valid: typ != ""},
			Amount:    decimal.NewNullDecimal(decimal.NewFromFloat(amount)),
			CreatedAt: ts,
		}
	}

	return New([]core.RawRecord{
		rec("demo-1", "Nómina", "nomina", core.AccountCard, core.TypeIncome, 1500, day(1)),
		rec("demo-2", "Supermercado", "comida", core.AccountCard, core.TypeExpense, 54.30, day(2)),
		rec("demo-3", "Desayuno bar", "desayuno", core.AccountCash, core.TypeExpense, 4.50, day(2)),
		rec("demo-4", "Transferencia ahorro", "", core.AccountCard, core.TypeSavings, 200, day(3)),
		rec("demo-5", "Uber Eats", "uber eats", core.AccountCard, core.TypeExpense, 18.95, day(5)),
		rec("demo-6", "Alquiler", "casa", core.AccountCard, core.TypeExpense, 650, day(6)),
		rec("demo-7", "Restaurante", "restaurante", core.AccountCard, core.TypeExpense, 32.80, day(8)),
	})
}
