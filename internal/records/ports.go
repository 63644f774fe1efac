// Package records defines the ports for the remote record source and the
// cursor loop that drains it. Implementations live in subpackages.
package records

import (
	"context"
	"errors"
	"fmt"

	"dinero/internal/core"
)

var (
	// ErrSourceUnavailable wraps any failure while fetching records. No
	// derivation runs on a partial fetch.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrArchiveFailed wraps a failed archive request.
	ErrArchiveFailed = errors.New("archive failed")
)

// Batch is one page of raw records from the source.
type Batch struct {
	Records    []core.RawRecord
	NextCursor string
	HasMore    bool
}

// Ports for the record source collaborator.
type (
	PageFetcher interface {
		// FetchPage returns one page of records. An empty cursor requests
		// the first page.
		FetchPage(ctx context.Context, cursor string) (Batch, error)
	}

	Archiver interface {
		// Archive marks the record inactive at the source. The caller must
		// refresh its ledger afterwards.
		Archive(ctx context.Context, id string) error
	}

	// Source is the full collaborator surface.
	Source interface {
		PageFetcher
		Archiver
	}
)

// FetchAll drains the source, concatenating pages in received order until it
// reports no more results. All or nothing: any page failure discards what
// was fetched so far.
func FetchAll(ctx context.Context, f PageFetcher) ([]core.RawRecord, error) {
	var all []core.RawRecord
	var cursor string

	for {
		batch, err := f.FetchPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		all = append(all, batch.Records...)
		if !batch.HasMore {
			return all, nil
		}
		cursor = batch.NextCursor
	}
}
