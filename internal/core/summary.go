package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComerLabel is the synthetic category that absorbs the dining-related
// categories in the general summary.
const ComerLabel = "Comer"

// ComerCategories is the merge set: raw category names relabeled to Comer
// before grouping.
var ComerCategories = map[string]bool{
	"uber eats":   true,
	"comida":      true,
	"monchis":     true,
	"desayuno":    true,
	"restaurante": true,
}

// Direction selects whether a summary views the ledger as spending or
// earning.
type Direction string

const (
	DirectionExpense Direction = TypeExpense
	DirectionIncome  Direction = TypeIncome
)

type (
	// CategoryGroup is one slice of a summary. Amount is an unsigned
	// magnitude; Label is the pre-formatted display string the pie charts
	// use directly.
	CategoryGroup struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
		Label    string          `json:"label"`
	}

	// CategorySummary is the grouped rollup for one direction. Groups keep
	// first-seen order over the time-sorted ledger; GrandTotal is the
	// magnitude of the direction-filtered sum before grouping.
	CategorySummary struct {
		Direction  Direction       `json:"direction"`
		Groups     []CategoryGroup `json:"groups"`
		GrandTotal decimal.Decimal `json:"grandTotal"`
	}
)

// Summarize groups the ledger by category for one direction. Categories in
// the merge set collapse into the synthetic Comer label so they never appear
// individually. Callers window the ledger beforehand.
func Summarize(l Ledger, dir Direction, merge map[string]bool) CategorySummary {
	return summarize(l, dir, func(t Transaction) (string, bool) {
		if merge[t.Category] {
			return ComerLabel, true
		}
		return t.CategoryLabel(), true
	})
}

// SummarizeWithin is the drill-down view: only transactions whose category
// is in the set, grouped by their original category with no relabeling.
func SummarizeWithin(l Ledger, dir Direction, set map[string]bool) CategorySummary {
	return summarize(l, dir, func(t Transaction) (string, bool) {
		if !set[t.Category] {
			return "", false
		}
		return t.CategoryLabel(), true
	})
}

func summarize(l Ledger, dir Direction, group func(Transaction) (string, bool)) CategorySummary {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	grand := decimal.Zero

	for _, t := range l {
		if t.Type != string(dir) {
			continue
		}
		key, ok := group(t)
		if !ok {
			continue
		}
		grand = grand.Add(t.Amount)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(t.Amount)
	}

	groups := make([]CategoryGroup, 0, len(order))
	for _, key := range order {
		sum := sums[key]
		// Strict sign test: an expense group must net negative, an income
		// group positive. Zero-net groups fall out here.
		if dir == DirectionExpense && !sum.IsNegative() {
			continue
		}
		if dir == DirectionIncome && !sum.IsPositive() {
			continue
		}
		abs := sum.Abs()
		groups = append(groups, CategoryGroup{
			Category: key,
			Amount:   abs,
			Label:    fmt.Sprintf("%s (%s €)", key, abs.StringFixed(2)),
		})
	}

	return CategorySummary{
		Direction:  dir,
		Groups:     groups,
		GrandTotal: grand.Abs(),
	}
}
