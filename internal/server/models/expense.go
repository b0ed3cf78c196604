package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one shared-ledger expense (or refund) row. The ledger is
// shared by the whole household, so rows are not scoped to the
// authenticated account; SpentBy records which member paid.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    string
	SpentBy     string
	SpentAt     time.Time
	Refund      bool
	ReceiptKey  string
	CreatedAt   time.Time
}
