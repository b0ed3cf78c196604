package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/shopspring/decimal"
)

func (a *App) addReminder(ctx context.Context) {
	description, err := GetSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	amountText, err := GetSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		printlnFn("Not a valid amount:", amountText)
		return
	}

	dueText, err := GetSimpleText(a.reader, "Due day of month (1-28)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	dueDay, err := strconv.Atoi(dueText)
	if err != nil || dueDay < 1 || dueDay > 28 {
		printlnFn("Not a valid day of month:", dueText)
		return
	}

	r := &models.Reminder{
		Description: description,
		Amount:      amount,
		DueDay:      dueDay,
		Active:      true,
	}
	if err := a.ledger.AddReminder(ctx, r); err != nil {
		log.Printf("Failed to add reminder: %s", err.Error())
		return
	}
	printlnFn("Added reminder", description)
}

func (a *App) listReminders(ctx context.Context) {
	items := a.ledger.Reminders()
	if len(items) == 0 {
		printlnFn("No reminders yet")
		return
	}
	for _, r := range items {
		marker := ""
		if r.Provisional {
			marker = " (pending sync)"
		}
		state := "active"
		if !r.Active {
			state = "inactive"
		}
		printlnFn(fmt.Sprintf("%s  day %2d  %s %s (%s, %s)%s",
			r.ID, r.DueDay, r.Amount.StringFixed(2), r.Description, r.Owner, state, marker))
	}
}

func (a *App) deleteReminder(ctx context.Context, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: delreminder <id>")
		return
	}
	if err := a.ledger.DeleteReminder(ctx, args[0]); err != nil {
		log.Printf("Failed to delete reminder: %s", err.Error())
		return
	}
	printlnFn("Deleted reminder", args[0])
}
