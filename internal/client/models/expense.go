// Package models defines client-side data models: the ledger entities shown
// to the user and the queued mutations that survive restarts.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// provisionalIDPrefix keeps locally generated identifiers disjoint from
// server-assigned ones, which are plain UUIDs.
const provisionalIDPrefix = "local-"

// NewProvisionalID returns a fresh identifier for an entity created while
// offline. It is high-entropy and never collides with a server id.
func NewProvisionalID() string {
	return provisionalIDPrefix + uuid.NewString()
}

// IsProvisionalID reports whether id was generated locally.
func IsProvisionalID(id string) bool {
	return strings.HasPrefix(id, provisionalIDPrefix)
}

// Expense is one shared-ledger expense or refund as held in memory and in
// the local cache. Provisional marks entities created or modified offline
// and not yet confirmed by the server.
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
	Provisional bool
}

// ExpenseFromRecord converts a confirmed wire record. The result is never
// provisional.
func ExpenseFromRecord(r *rpc.ExpenseRecord) *Expense {
	return &Expense{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		SpentBy:     r.User,
		SpentAt:     r.SpentAt,
		Refund:      r.Refund,
		ReceiptKey:  r.ReceiptKey,
		CreatedAt:   r.CreatedAt,
	}
}

// ToRecord converts the expense to its wire form. The provisional flag does
// not travel; the server assigns its own id on insert.
func (e *Expense) ToRecord() *rpc.ExpenseRecord {
	return &rpc.ExpenseRecord{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		User:        e.SpentBy,
		SpentAt:     e.SpentAt,
		Refund:      e.Refund,
		ReceiptKey:  e.ReceiptKey,
		CreatedAt:   e.CreatedAt,
	}
}
