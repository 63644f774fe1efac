package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dinero/internal/core"
	"dinero/internal/records"
)

type fakeSource struct {
	recs       []core.RawRecord
	fetchCalls int
	fetchErr   error
	archived   []string
	archiveErr error
}

func (f *fakeSource) FetchPage(_ context.Context, _ string) (records.Batch, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return records.Batch{}, f.fetchErr
	}
	return records.Batch{Records: f.recs}, nil
}

func (f *fakeSource) Archive(_ context.Context, id string) error {
	if f.archiveErr != nil {
		return f.archiveErr
	}
	f.archived = append(f.archived, id)
	return nil
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishArchived(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id)
	return nil
}

func rawRec(id, typ string, amount float64, ts time.Time) core.RawRecord {
	return core.RawRecord{
		ID:        id,
		Title:     []string{id},
		Account:   core.Choice{Name: core.AccountCard, Valid: true},
		Type:      core.Choice{Name: typ, Valid: true},
		Amount:    decimal.NewNullDecimal(decimal.NewFromFloat(amount)),
		CreatedAt: ts,
	}
}

func testRecords() []core.RawRecord {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
	}
	return []core.RawRecord{
		rawRec("t1", core.TypeIncome, 100, day(1)),
		rawRec("t2", core.TypeExpense, 40, day(2)),
		rawRec("t3", core.TypeSavings, 20, day(3)),
	}
}

func TestLedgerCachesSnapshot(t *testing.T) {
	src := &fakeSource{recs: testRecords()}
	svc := NewLedgerService(src, nil, time.Hour)
	ctx := context.Background()

	l1, err := svc.Ledger(ctx)
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if len(l1) != 3 {
		t.Fatalf("transactions=%d want 3", len(l1))
	}

	if _, err := svc.Ledger(ctx); err != nil {
		t.Fatalf("cached Ledger: %v", err)
	}
	if src.fetchCalls != 1 {
		t.Fatalf("fetchCalls=%d want 1 (second read cached)", src.fetchCalls)
	}
}

func TestLedgerRefetchesAfterTTL(t *testing.T) {
	src := &fakeSource{recs: testRecords()}
	svc := NewLedgerService(src, nil, 10*time.Millisecond)
	ctx := context.Background()

	if _, err := svc.Ledger(ctx); err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := svc.Ledger(ctx); err != nil {
		t.Fatalf("Ledger after expiry: %v", err)
	}
	if src.fetchCalls != 2 {
		t.Fatalf("fetchCalls=%d want 2", src.fetchCalls)
	}
}

func TestRefreshFailsOnMalformedRecord(t *testing.T) {
	recs := testRecords()
	recs[1].Amount = decimal.NullDecimal{}
	src := &fakeSource{recs: recs}
	svc := NewLedgerService(src, nil, time.Hour)

	_, err := svc.Refresh(context.Background())
	if !errors.Is(err, core.ErrMalformedRecord) {
		t.Fatalf("err=%v want ErrMalformedRecord", err)
	}
	// The failed refresh must not leave a cached snapshot behind.
	src.recs = testRecords()
	if _, err := svc.Ledger(context.Background()); err != nil {
		t.Fatalf("Ledger after failed refresh: %v", err)
	}
	if src.fetchCalls != 2 {
		t.Fatalf("fetchCalls=%d want 2", src.fetchCalls)
	}
}

func TestRefreshWrapsSourceFailure(t *testing.T) {
	src := &fakeSource{fetchErr: errors.New("down")}
	svc := NewLedgerService(src, nil, time.Hour)

	if _, err := svc.Refresh(context.Background()); !errors.Is(err, records.ErrSourceUnavailable) {
		t.Fatalf("err=%v want ErrSourceUnavailable", err)
	}
}

func TestArchiveInvalidatesCacheAndPublishes(t *testing.T) {
	src := &fakeSource{recs: testRecords()}
	pub := &fakePublisher{}
	svc := NewLedgerService(src, pub, time.Hour)
	ctx := context.Background()

	if _, err := svc.Ledger(ctx); err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if err := svc.Archive(ctx, "t2"); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if len(src.archived) != 1 || src.archived[0] != "t2" {
		t.Fatalf("archived=%v", src.archived)
	}
	if len(pub.published) != 1 || pub.published[0] != "t2" {
		t.Fatalf("published=%v", pub.published)
	}

	// Next read must go back to the source.
	if _, err := svc.Ledger(ctx); err != nil {
		t.Fatalf("Ledger after archive: %v", err)
	}
	if src.fetchCalls != 2 {
		t.Fatalf("fetchCalls=%d want 2 after invalidation", src.fetchCalls)
	}
}

func TestArchiveFailureKeepsCache(t *testing.T) {
	src := &fakeSource{recs: testRecords(), archiveErr: errors.New("forbidden")}
	svc := NewLedgerService(src, nil, time.Hour)
	ctx := context.Background()

	if _, err := svc.Ledger(ctx); err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if err := svc.Archive(ctx, "t2"); !errors.Is(err, records.ErrArchiveFailed) {
		t.Fatalf("err=%v want ErrArchiveFailed", err)
	}
	if _, err := svc.Ledger(ctx); err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if src.fetchCalls != 1 {
		t.Fatalf("fetchCalls=%d want 1 (cache kept on failed archive)", src.fetchCalls)
	}
}

func TestArchivePublishFailureIsNotFatal(t *testing.T) {
	src := &fakeSource{recs: testRecords()}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewLedgerService(src, pub, time.Hour)

	if err := svc.Archive(context.Background(), "t1"); err != nil {
		t.Fatalf("Archive must succeed despite publish failure: %v", err)
	}
}

func TestBuildDashboard(t *testing.T) {
	src := &fakeSource{recs: testRecords()}
	svc := NewLedgerService(src, nil, time.Hour)
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	d, err := svc.BuildDashboard(context.Background(), now)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if !d.Balances.Total.Equal(decimal.NewFromInt(60)) {
		t.Errorf("total=%s want 60", d.Balances.Total)
	}
	if !d.Balances.Card.Equal(decimal.NewFromInt(80)) {
		t.Errorf("card=%s want 80", d.Balances.Card)
	}
	if len(d.TotalSeries) != 3 {
		t.Errorf("total series points=%d want 3", len(d.TotalSeries))
	}
	if len(d.SavingsSeries) != 1 {
		t.Errorf("savings series points=%d want 1", len(d.SavingsSeries))
	}
	if len(d.Expenses.Groups) != 1 {
		t.Errorf("expense groups=%+v", d.Expenses.Groups)
	}
}
