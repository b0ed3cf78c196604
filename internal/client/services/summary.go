package services

import (
	"time"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/shopspring/decimal"
)

// Totals aggregates a slice of expenses. Refunds count negative, so a
// refunded purchase nets out of every bucket it appears in.
type Totals struct {
	Total      decimal.Decimal
	ByCategory map[string]decimal.Decimal
	ByUser     map[string]decimal.Decimal
}

// Summarize totals the expenses that fall into the given period. A zero
// month means the whole year.
func Summarize(items []*models.Expense, year int, month time.Month) *Totals {
	t := &Totals{
		ByCategory: map[string]decimal.Decimal{},
		ByUser:     map[string]decimal.Decimal{},
	}
	for _, e := range items {
		if e.SpentAt.Year() != year {
			continue
		}
		if month != 0 && e.SpentAt.Month() != month {
			continue
		}
		amount := e.Amount
		if e.Refund {
			amount = amount.Neg()
		}
		t.Total = t.Total.Add(amount)
		t.ByCategory[e.Category] = t.ByCategory[e.Category].Add(amount)
		t.ByUser[e.SpentBy] = t.ByUser[e.SpentBy].Add(amount)
	}
	return t
}

// Balance settles a two-person household: every expense is split in half,
// so whoever paid less owes half of the difference. With one spender the
// other member owes half of everything; with none there is nothing to
// settle.
func Balance(items []*models.Expense) (debtor string, creditor string, amount decimal.Decimal) {
	paid := map[string]decimal.Decimal{}
	for _, e := range items {
		amount := e.Amount
		if e.Refund {
			amount = amount.Neg()
		}
		paid[e.SpentBy] = paid[e.SpentBy].Add(amount)
	}

	var users []string
	for u := range paid {
		users = append(users, u)
	}
	if len(users) < 2 {
		return "", "", decimal.Zero
	}

	a, b := users[0], users[1]
	diff := paid[a].Sub(paid[b])
	half := diff.Div(decimal.NewFromInt(2))

	switch {
	case half.IsPositive():
		return b, a, half
	case half.IsNegative():
		return a, b, half.Neg()
	default:
		return "", "", decimal.Zero
	}
}
