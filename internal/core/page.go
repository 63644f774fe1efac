package core

import "time"

// PageSize is the fixed number of rows per listing page.
const PageSize = 20

type (
	// Row is one listing entry. NewDay is true when the row's date differs
	// from the previous row's date within the same page; the first row of a
	// page never carries the flag.
	Row struct {
		Transaction
		NewDay bool
	}

	// Page is one slice of the reverse-chronological listing.
	Page struct {
		Number     int
		TotalPages int
		Rows       []Row
	}
)

// Paginate slices the ledger in display order, most recent first. The
// reversal is a view transform over the ascending sort, so equal timestamps
// keep their relative retrieval order, reversed. Out-of-range page numbers
// are clamped, never an error, and an empty ledger still has one page.
func Paginate(l Ledger, page int) Page {
	n := len(l)
	totalPages := (n + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}

	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		t := l[n-1-i]
		newDay := false
		if i > start {
			prev := l[n-i]
			newDay = !sameDay(prev.Timestamp, t.Timestamp)
		}
		rows = append(rows, Row{Transaction: t, NewDay: newDay})
	}

	return Page{Number: page, TotalPages: totalPages, Rows: rows}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
