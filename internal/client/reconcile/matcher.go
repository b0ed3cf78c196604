package reconcile

import "github.com/dmitrijs2005/homeledger/internal/client/models"

// expenseMatches reports whether a confirmed server row is structurally the
// same entry as a provisional one. Server-assigned fields (id, created_at)
// are ignored on purpose: the whole point is to recognize an entry the
// server renamed.
func expenseMatches(provisional, confirmed *models.Expense) bool {
	return provisional.Description == confirmed.Description &&
		provisional.Amount.Equal(confirmed.Amount) &&
		provisional.SpentBy == confirmed.SpentBy &&
		provisional.Category == confirmed.Category
}

func reminderMatches(provisional, confirmed *models.Reminder) bool {
	return provisional.Description == confirmed.Description &&
		provisional.Amount.Equal(confirmed.Amount) &&
		provisional.Owner == confirmed.Owner &&
		provisional.DueDay == confirmed.DueDay
}

// matchProvisionalExpense finds the provisional row a confirmed one should
// replace. With several candidates the earliest-created provisional wins, so
// duplicate-looking entries resolve in the order they were made.
func matchProvisionalExpense(items []*models.Expense, confirmed *models.Expense) (string, bool) {
	var bestID string
	var found bool
	var bestIdx int
	for i, e := range items {
		if !e.Provisional || !expenseMatches(e, confirmed) {
			continue
		}
		if !found || e.CreatedAt.Before(items[bestIdx].CreatedAt) {
			bestID, bestIdx, found = e.ID, i, true
		}
	}
	return bestID, found
}

func matchProvisionalReminder(items []*models.Reminder, confirmed *models.Reminder) (string, bool) {
	var bestID string
	var found bool
	var bestIdx int
	for i, r := range items {
		if !r.Provisional || !reminderMatches(r, confirmed) {
			continue
		}
		if !found || r.CreatedAt.Before(items[bestIdx].CreatedAt) {
			bestID, bestIdx, found = r.ID, i, true
		}
	}
	return bestID, found
}
