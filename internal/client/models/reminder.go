package models

import (
	"time"

	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/shopspring/decimal"
)

// Reminder is a recurring-payment reminder as held in memory and in the
// local cache.
type Reminder struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Owner       string
	DueDay      int
	Active      bool
	CreatedAt   time.Time
	Provisional bool
}

// ReminderFromRecord converts a confirmed wire record.
func ReminderFromRecord(r *rpc.ReminderRecord) *Reminder {
	return &Reminder{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Owner:       r.User,
		DueDay:      r.DueDay,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
	}
}

// ToRecord converts the reminder to its wire form.
func (m *Reminder) ToRecord() *rpc.ReminderRecord {
	return &rpc.ReminderRecord{
		ID:          m.ID,
		Description: m.Description,
		Amount:      m.Amount,
		User:        m.Owner,
		DueDay:      m.DueDay,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
	}
}
