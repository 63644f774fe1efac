package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dinero/internal/cache"
	"dinero/internal/core"
	applog "dinero/internal/log"
	"dinero/internal/records"
)

// ledgerKey is the single cache key: the service holds one ledger snapshot
// per process.
const ledgerKey = "ledger"

// ArchivePublisher announces archived records to external consumers.
type ArchivePublisher interface {
	PublishArchived(ctx context.Context, id string) error
}

// LedgerService owns the fetch→normalize pipeline and the TTL cache at the
// source boundary. The derivations themselves stay in core; this layer only
// hands them an immutable snapshot.
type LedgerService struct {
	source records.Source
	events ArchivePublisher // optional, may be nil
	fetch  *cache.TTLCache[core.Ledger]
}

func NewLedgerService(source records.Source, events ArchivePublisher, ttl time.Duration) *LedgerService {
	return &LedgerService{
		source: source,
		events: events,
		fetch:  cache.New[core.Ledger](1, ttl),
	}
}

// Ledger returns the current snapshot, fetching and normalizing when the
// cached one is stale or absent.
func (s *LedgerService) Ledger(ctx context.Context) (core.Ledger, error) {
	if l, ok := s.fetch.Get(ledgerKey); ok {
		return l, nil
	}
	return s.Refresh(ctx)
}

// Refresh bypasses the cache and rebuilds the ledger from the source. All
// or nothing: a fetch or normalization failure leaves no partial state.
func (s *LedgerService) Refresh(ctx context.Context) (core.Ledger, error) {
	raw, err := records.FetchAll(ctx, s.source)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	ledger, err := core.NormalizeAll(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize records: %w", err)
	}

	s.fetch.Set(ledgerKey, ledger)
	slog.InfoContext(ctx, "Ledger refreshed",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldTransactions, len(ledger))
	return ledger, nil
}

// Archive marks the record inactive at the source and drops the cached
// snapshot, so the next read re-fetches. The engine holds no stale state
// and never repairs the ledger incrementally.
func (s *LedgerService) Archive(ctx context.Context, id string) error {
	if err := s.source.Archive(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", records.ErrArchiveFailed, err)
	}

	s.fetch.Delete(ledgerKey)

	// Event publishing is best effort; the archive already succeeded.
	if s.events != nil {
		if err := s.events.PublishArchived(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish archive event",
				applog.FieldComponent, applog.ComponentLedger,
				applog.FieldTransactionID, id,
				applog.FieldError, err)
		}
	}

	return nil
}
