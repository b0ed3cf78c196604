package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/client/services"
)

// summary prints per-category and per-user totals. With no arguments the
// current month is used; "summary 2025" covers a whole year and
// "summary 2025 3" a specific month.
func (a *App) summary(ctx context.Context, args []string) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if len(args) >= 1 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			printlnFn("Usage: summary [year] [month]")
			return
		}
		year = y
		month = 0
	}
	if len(args) >= 2 {
		m, err := strconv.Atoi(args[1])
		if err != nil || m < 1 || m > 12 {
			printlnFn("Usage: summary [year] [month]")
			return
		}
		month = time.Month(m)
	}

	totals := services.Summarize(a.ledger.Expenses(), year, month)

	if month != 0 {
		printlnFn(fmt.Sprintf("Totals for %s %d", month, year))
	} else {
		printlnFn(fmt.Sprintf("Totals for %d", year))
	}
	printlnFn("  overall:", totals.Total.StringFixed(2))
	for category, sum := range totals.ByCategory {
		printlnFn(fmt.Sprintf("  %-12s %s", category, sum.StringFixed(2)))
	}
	for user, sum := range totals.ByUser {
		printlnFn(fmt.Sprintf("  paid by %-8s %s", user, sum.StringFixed(2)))
	}
}

func (a *App) balance(ctx context.Context) {
	debtor, creditor, amount := services.Balance(a.ledger.Expenses())
	if amount.IsZero() {
		printlnFn("All settled")
		return
	}
	printlnFn(fmt.Sprintf("%s owes %s %s", debtor, creditor, amount.StringFixed(2)))
}

func (a *App) syncNow(ctx context.Context) {
	if !a.monitor.CheckNow(ctx) {
		printlnFn("Server unreachable, changes stay queued")
		return
	}
	if err := a.replayer.SyncNow(ctx); err != nil {
		printlnFn("Sync failed:", err.Error())
	}
}

func (a *App) pending(ctx context.Context) {
	n, err := a.ledger.PendingCount(ctx)
	if err != nil {
		printlnFn("Failed to read queue:", err.Error())
		return
	}
	printlnFn(fmt.Sprintf("%d change(s) waiting for sync", n))
}
