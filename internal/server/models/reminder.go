package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reminder is a recurring-payment reminder. DueDay is the day of month the
// payment is due.
type Reminder struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Owner       string
	DueDay      int
	Active      bool
	CreatedAt   time.Time
}
