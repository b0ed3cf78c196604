package cli

import (
	"context"
	"errors"
	"log"

	"github.com/dmitrijs2005/homeledger/internal/client/services"
)

// receipt handles "receipt attach <expense-id> <file>" and
// "receipt show <expense-id> [file]". With a file argument, show downloads
// the receipt instead of printing the link.
func (a *App) receipt(ctx context.Context, args []string) {
	if len(args) < 2 {
		printlnFn("Usage: receipt attach <expense-id> <file> | receipt show <expense-id> [file]")
		return
	}

	switch args[0] {
	case "attach":
		if len(args) < 3 {
			printlnFn("Usage: receipt attach <expense-id> <file>")
			return
		}
		if err := a.receipts.Attach(ctx, args[1], args[2]); err != nil {
			if errors.Is(err, services.ErrReceiptRequiresConnection) {
				printlnFn("Receipts can only be attached while online and after the expense is synced")
			} else {
				log.Printf("Failed to attach receipt: %s", err.Error())
			}
			return
		}
		printlnFn("Receipt attached")

	case "show":
		exp, ok := a.session.FindExpense(args[1])
		if !ok {
			printlnFn("No such expense:", args[1])
			return
		}
		if exp.ReceiptKey == "" {
			printlnFn("No receipt attached to", args[1])
			return
		}
		if len(args) >= 3 {
			if err := a.receipts.Download(ctx, exp.ReceiptKey, args[2]); err != nil {
				log.Printf("Failed to download receipt: %s", err.Error())
				return
			}
			printlnFn("Receipt saved to", args[2])
			return
		}
		url, err := a.receipts.DownloadURL(ctx, exp.ReceiptKey)
		if err != nil {
			log.Printf("Failed to get receipt link: %s", err.Error())
			return
		}
		printlnFn("Receipt link (valid briefly):", url)

	default:
		printlnFn("Usage: receipt attach <expense-id> <file> | receipt show <expense-id> [file]")
	}
}
