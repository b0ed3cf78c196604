package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/dmitrijs2005/homeledger/internal/server/models"
	"github.com/dmitrijs2005/homeledger/internal/server/realtime"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/reminders"
	"github.com/google/uuid"
)

// LedgerService owns all writes to the shared ledger. Every committed
// mutation is published to the realtime hub so subscribed clients converge
// without polling.
type LedgerService struct {
	expenses  expenses.Repository
	reminders reminders.Repository
	hub       *realtime.Hub
}

func NewLedgerService(er expenses.Repository, rr reminders.Repository, hub *realtime.Hub) *LedgerService {
	return &LedgerService{expenses: er, reminders: rr, hub: hub}
}

func (s *LedgerService) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.expenses.List(ctx)
}

// InsertExpense assigns the server id and creation time, stores the row and
// publishes the INSERT event. The returned expense is the confirmed record.
func (s *LedgerService) InsertExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	if err := s.expenses.Insert(ctx, e); err != nil {
		return nil, err
	}

	s.publish(rpc.ChangeInsert, common.TableExpenses, nil, ExpenseToRecord(e))
	return e, nil
}

func (s *LedgerService) UpdateExpense(ctx context.Context, id string, patch *models.Expense) error {
	old, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch.ID = id
	patch.CreatedAt = old.CreatedAt
	if err := s.expenses.Update(ctx, patch); err != nil {
		return err
	}

	s.publish(rpc.ChangeUpdate, common.TableExpenses, ExpenseToRecord(old), ExpenseToRecord(patch))
	return nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id string) error {
	old, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(rpc.ChangeDelete, common.TableExpenses, ExpenseToRecord(old), nil)
	return nil
}

func (s *LedgerService) ListReminders(ctx context.Context) ([]*models.Reminder, error) {
	return s.reminders.List(ctx)
}

func (s *LedgerService) InsertReminder(ctx context.Context, m *models.Reminder) (*models.Reminder, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()

	if err := s.reminders.Insert(ctx, m); err != nil {
		return nil, err
	}

	s.publish(rpc.ChangeInsert, common.TableReminders, nil, ReminderToRecord(m))
	return m, nil
}

func (s *LedgerService) UpdateReminder(ctx context.Context, id string, patch *models.Reminder) error {
	old, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch.ID = id
	patch.CreatedAt = old.CreatedAt
	if err := s.reminders.Update(ctx, patch); err != nil {
		return err
	}

	s.publish(rpc.ChangeUpdate, common.TableReminders, ReminderToRecord(old), ReminderToRecord(patch))
	return nil
}

func (s *LedgerService) DeleteReminder(ctx context.Context, id string) error {
	old, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reminders.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(rpc.ChangeDelete, common.TableReminders, ReminderToRecord(old), nil)
	return nil
}

func (s *LedgerService) publish(t rpc.ChangeEventType, table string, oldRec, newRec any) {
	ev := &rpc.ChangeEvent{Type: t, Table: table}
	if oldRec != nil {
		ev.Old, _ = json.Marshal(oldRec)
	}
	if newRec != nil {
		ev.New, _ = json.Marshal(newRec)
	}
	s.hub.Publish(ev)
}

// ExpenseToRecord converts the storage model to its wire form.
func ExpenseToRecord(e *models.Expense) *rpc.ExpenseRecord {
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

// ExpenseFromRecord converts a wire record to the storage model.
func ExpenseFromRecord(r *rpc.ExpenseRecord) *models.Expense {
	return &models.Expense{
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

// ReminderToRecord converts the storage model to its wire form.
func ReminderToRecord(m *models.Reminder) *rpc.ReminderRecord {
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

// ReminderFromRecord converts a wire record to the storage model.
func ReminderFromRecord(r *rpc.ReminderRecord) *models.Reminder {
	return &models.Reminder{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Owner:       r.User,
		DueDay:      r.DueDay,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
	}
}
