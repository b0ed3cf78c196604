package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/shopspring/decimal"
)

func (a *App) addExpense(ctx context.Context) {
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

	category, err := GetSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	refundText, err := GetSimpleText(a.reader, "Is this a refund? (y/N)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	e := &models.Expense{
		Description: description,
		Amount:      amount,
		Category:    category,
		Refund:      strings.EqualFold(refundText, "y"),
	}
	if err := a.ledger.AddExpense(ctx, e); err != nil {
		log.Printf("Failed to add expense: %s", err.Error())
		return
	}
	printlnFn("Added", description)
}

func (a *App) list(ctx context.Context) {
	items := a.ledger.Expenses()
	if len(items) == 0 {
		printlnFn("No expenses yet")
		return
	}
	for _, e := range items {
		marker := ""
		if e.Provisional {
			marker = " (pending sync)"
		}
		sign := ""
		if e.Refund {
			sign = "-"
		}
		receipt := ""
		if e.ReceiptKey != "" {
			receipt = " [receipt]"
		}
		printlnFn(fmt.Sprintf("%s  %s  %s%s %s (%s)%s%s",
			e.ID, e.SpentAt.Format("2006-01-02"), sign, e.Amount.StringFixed(2),
			e.Description, e.SpentBy, receipt, marker))
	}
}

func (a *App) deleteExpense(ctx context.Context, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: del <id>")
		return
	}
	if err := a.ledger.DeleteExpense(ctx, args[0]); err != nil {
		log.Printf("Failed to delete: %s", err.Error())
		return
	}
	printlnFn("Deleted", args[0])
}
