package rpc

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ChangeEventType enumerates the kinds of realtime change events.
type ChangeEventType string

const (
	ChangeInsert ChangeEventType = "INSERT"
	ChangeUpdate ChangeEventType = "UPDATE"
	ChangeDelete ChangeEventType = "DELETE"
)

// ExpenseRecord is the wire form of one expense row. ID is server-assigned;
// requests that create an expense leave it empty.
type ExpenseRecord struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	User        string          `json:"user"`
	SpentAt     time.Time       `json:"spent_at"`
	Refund      bool            `json:"refund"`
	ReceiptKey  string          `json:"receipt_key,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReminderRecord is the wire form of one recurring-payment reminder.
type ReminderRecord struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	User        string          `json:"user"`
	DueDay      int             `json:"due_day"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ChangeEvent is one realtime notification pushed on the Subscribe stream.
// Old and New hold the table's record type (ExpenseRecord or ReminderRecord)
// encoded as JSON; which fields are present depends on Type.
type ChangeEvent struct {
	Type  ChangeEventType `json:"type"`
	Table string          `json:"table"`
	Old   json.RawMessage `json:"old,omitempty"`
	New   json.RawMessage `json:"new,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	// Expenses are ordered most-recent-first.
	Expenses []ExpenseRecord `json:"expenses"`
}

type InsertExpenseRequest struct {
	Expense ExpenseRecord `json:"expense"`
}

type InsertExpenseResponse struct {
	Expense ExpenseRecord `json:"expense"`
}

type UpdateExpenseRequest struct {
	ID      string        `json:"id"`
	Expense ExpenseRecord `json:"expense"`
}

type UpdateExpenseResponse struct{}

type DeleteExpenseRequest struct {
	ID string `json:"id"`
}

type DeleteExpenseResponse struct{}

type ListRemindersRequest struct{}

type ListRemindersResponse struct {
	Reminders []ReminderRecord `json:"reminders"`
}

type InsertReminderRequest struct {
	Reminder ReminderRecord `json:"reminder"`
}

type InsertReminderResponse struct {
	Reminder ReminderRecord `json:"reminder"`
}

type UpdateReminderRequest struct {
	ID       string         `json:"id"`
	Reminder ReminderRecord `json:"reminder"`
}

type UpdateReminderResponse struct{}

type DeleteReminderRequest struct {
	ID string `json:"id"`
}

type DeleteReminderResponse struct{}

type PresignReceiptPutRequest struct{}

type PresignReceiptPutResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type PresignReceiptGetRequest struct {
	Key string `json:"key"`
}

type PresignReceiptGetResponse struct {
	URL string `json:"url"`
}

type SubscribeRequest struct {
	Tables []string `json:"tables"`
}
