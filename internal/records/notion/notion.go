// Package notion implements the record source against a Notion database of
// transactions.
package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/shopspring/decimal"

	"dinero/internal/core"
	"dinero/internal/records"
)

// Property names in the transactions database.
const (
	propDescription = "Description"
	propCategory    = "Category"
	propAmount      = "Amount"
	propAccount     = "Account"
	propType        = "Type"
	propDate        = "Date"
)

const queryPageSize = 100

// Querier is the slice of the Notion SDK the source uses. Kept small so
// tests can stand in for the remote API.
type Querier interface {
	QueryDatabase(ctx context.Context, databaseID notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	ArchivePage(ctx context.Context, pageID notionapi.PageID) error
}

// Source reads and archives transaction records in one Notion database.
type Source struct {
	api        Querier
	databaseID notionapi.DatabaseID
}

// New builds a source over the official Notion SDK.
func New(token, databaseID string) *Source {
	return &Source{
		api:        sdk{client: notionapi.NewClient(notionapi.Token(token))},
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// NewWithQuerier builds a source over a custom API client.
func NewWithQuerier(q Querier, databaseID string) *Source {
	return &Source{api: q, databaseID: notionapi.DatabaseID(databaseID)}
}

// FetchPage returns one page of raw records, preserving the database's
// result order.
func (s *Source) FetchPage(ctx context.Context, cursor string) (records.Batch, error) {
	req := &notionapi.DatabaseQueryRequest{PageSize: queryPageSize}
	if cursor != "" {
		req.StartCursor = notionapi.Cursor(cursor)
	}

	resp, err := s.api.QueryDatabase(ctx, s.databaseID, req)
	if err != nil {
		return records.Batch{}, fmt.Errorf("query transactions database: %w", err)
	}

	batch := records.Batch{
		NextCursor: string(resp.NextCursor),
		HasMore:    resp.HasMore,
		Records:    make([]core.RawRecord, 0, len(resp.Results)),
	}
	for _, page := range resp.Results {
		batch.Records = append(batch.Records, mapPage(page))
	}
	return batch, nil
}

// Archive marks the page archived. Notion has no hard delete; archived
// pages drop out of subsequent queries.
func (s *Source) Archive(ctx context.Context, id string) error {
	if err := s.api.ArchivePage(ctx, notionapi.PageID(id)); err != nil {
		return fmt.Errorf("archive page %s: %w", id, err)
	}
	return nil
}

// mapPage converts one Notion page into the neutral raw record shape the
// normalizer consumes. Absent selects stay invalid; a missing or non-number
// Amount property yields an invalid amount, which fails normalization.
func mapPage(page notionapi.Page) core.RawRecord {
	rec := core.RawRecord{ID: string(page.ID)}

	if prop, ok := page.Properties[propDescription]; ok {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			for _, run := range title.Title {
				rec.Title = append(rec.Title, run.PlainText)
			}
		}
	}

	rec.Category = selectChoice(page.Properties[propCategory])
	rec.Account = selectChoice(page.Properties[propAccount])
	rec.Type = selectChoice(page.Properties[propType])

	if prop, ok := page.Properties[propAmount]; ok {
		if num, ok := prop.(*notionapi.NumberProperty); ok {
			rec.Amount = decimal.NewNullDecimal(decimal.NewFromFloat(num.Number))
		}
	}

	if prop, ok := page.Properties[propDate]; ok {
		if created, ok := prop.(*notionapi.CreatedTimeProperty); ok {
			rec.CreatedAt = created.CreatedTime
		}
	}

	return rec
}

func selectChoice(prop notionapi.Property) core.Choice {
	sel, ok := prop.(*notionapi.SelectProperty)
	if !ok || sel.Select.Name == "" {
		return core.Choice{}
	}
	return core.Choice{Name: sel.Select.Name, Valid: true}
}

// sdk adapts the official client to the Querier port.
type sdk struct {
	client *notionapi.Client
}

func (s sdk) QueryDatabase(ctx context.Context, databaseID notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return s.client.Database.Query(ctx, databaseID, req)
}

func (s sdk) ArchivePage(ctx context.Context, pageID notionapi.PageID) error {
	_, err := s.client.Page.Update(ctx, pageID, &notionapi.PageUpdateRequest{Archived: true})
	return err
}
