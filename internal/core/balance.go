package core

import "github.com/shopspring/decimal"

// BalanceSnapshot holds the four bucket balances derived from a ledger.
// Derived data only; never stored.
type BalanceSnapshot struct {
	Total   decimal.Decimal `json:"total"`
	Card    decimal.Decimal `json:"card"`
	Cash    decimal.Decimal `json:"cash"`
	Savings decimal.Decimal `json:"savings"`
}

// Balances reduces the ledger to its bucket balances with four independent
// masked sums. Total masks on type (everything but Ahorros); the other three
// mask on account. Savings transfers are booked against the card account in
// the source, so the card balance subtracts the savings sum; otherwise money
// moved into savings would still be counted as sitting on the card.
func Balances(l Ledger) BalanceSnapshot {
	total := decimal.Zero
	rawCard := decimal.Zero
	cash := decimal.Zero
	savings := decimal.Zero

	for _, t := range l {
		if t.Type != TypeSavings {
			total = total.Add(t.Amount)
		}
		switch t.Account {
		case AccountCard:
			rawCard = rawCard.Add(t.Amount)
		case AccountCash:
			cash = cash.Add(t.Amount)
		case AccountSavings:
			savings = savings.Add(t.Amount)
		}
	}

	return BalanceSnapshot{
		Total:   total,
		Card:    rawCard.Sub(savings),
		Cash:    cash,
		Savings: savings,
	}
}
