// Package services implements the client's application logic: routing each
// write to the server or the offline queue, rebuilding state on startup, and
// summarizing the ledger.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/client/notify"
	"github.com/dmitrijs2005/homeledger/internal/client/repositories/expenses"
	"github.com/dmitrijs2005/homeledger/internal/client/repositories/queue"
	"github.com/dmitrijs2005/homeledger/internal/client/repositories/reminders"
	"github.com/dmitrijs2005/homeledger/internal/client/session"
	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/logging"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
)

// OnlineChecker reports the current connectivity state.
type OnlineChecker interface {
	IsOnline() bool
}

// Waker requests a sync attempt, e.g. right after a mutation was queued.
type Waker interface {
	Wake()
}

// LedgerService is the dispatcher in front of every ledger write. When the
// backend is reachable the write goes straight through; otherwise the entity
// is patched optimistically in the session and the mutation is queued for
// replay. Either way the caller gets an immediate answer.
type LedgerService struct {
	client    client.Client
	session   *session.Session
	queue     queue.Repository
	expenses  expenses.Repository
	reminders reminders.Repository
	online    OnlineChecker
	waker     Waker
	notifier  notify.Notifier
	logger    logging.Logger
}

func NewLedgerService(c client.Client, sess *session.Session, q queue.Repository,
	exp expenses.Repository, rem reminders.Repository, online OnlineChecker,
	waker Waker, notifier notify.Notifier, logger logging.Logger) *LedgerService {
	return &LedgerService{
		client:    c,
		session:   sess,
		queue:     q,
		expenses:  exp,
		reminders: rem,
		online:    online,
		waker:     waker,
		notifier:  notifier,
		logger:    logger,
	}
}

// LoadInitial fills the session. Online it pulls the current server state
// and refreshes the local cache; offline it restores the cached rows and
// re-applies the queued mutations on top, so provisional entries made
// before a restart are visible again.
func (s *LedgerService) LoadInitial(ctx context.Context) error {
	if s.online.IsOnline() {
		exps, err := s.client.ListExpenses(ctx)
		if err == nil {
			s.session.SetExpenses(exps)
			if cerr := s.expenses.ReplaceAll(ctx, exps); cerr != nil {
				s.logger.Warn(ctx, "failed to refresh expense cache", "error", cerr)
			}
			rems, err := s.client.ListReminders(ctx)
			if err != nil {
				return err
			}
			s.session.SetReminders(rems)
			if cerr := s.reminders.ReplaceAll(ctx, rems); cerr != nil {
				s.logger.Warn(ctx, "failed to refresh reminder cache", "error", cerr)
			}
			return nil
		}
		if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
	}
	return s.loadFromCache(ctx)
}

func (s *LedgerService) loadFromCache(ctx context.Context) error {
	exps, err := s.expenses.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", client.ErrLocalDataNotAvailable, err)
	}
	s.session.SetExpenses(exps)

	rems, err := s.reminders.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", client.ErrLocalDataNotAvailable, err)
	}
	s.session.SetReminders(rems)

	if err := s.replayQueueIntoSession(ctx); err != nil {
		s.logger.Warn(ctx, "failed to restore provisional entries", "error", err)
	}
	return nil
}

// replayQueueIntoSession re-applies the pending mutations to the cached
// rows, purely in memory, to rebuild the optimistic state shown before the
// restart.
func (s *LedgerService) replayQueueIntoSession(ctx context.Context) error {
	muts, err := s.queue.DrainInOrder(ctx, common.TableExpenses)
	if err != nil {
		return err
	}
	for _, m := range muts {
		s.applyExpenseMutation(m)
	}

	muts, err = s.queue.DrainInOrder(ctx, common.TableReminders)
	if err != nil {
		return err
	}
	for _, m := range muts {
		s.applyReminderMutation(m)
	}
	return nil
}

func (s *LedgerService) applyExpenseMutation(m *models.QueuedMutation) {
	switch m.Kind {
	case models.MutationAdd, models.MutationUpdate:
		exp, err := expenseFromPayload(m.Payload)
		if err != nil {
			return
		}
		exp.ID = m.TargetID
		exp.Provisional = true
		if !s.session.ReplaceExpense(m.TargetID, exp) {
			s.session.PrependExpense(exp)
		}
	case models.MutationDelete:
		s.session.RemoveExpense(m.TargetID)
	}
}

func (s *LedgerService) applyReminderMutation(m *models.QueuedMutation) {
	switch m.Kind {
	case models.MutationAdd, models.MutationUpdate:
		rem, err := reminderFromPayload(m.Payload)
		if err != nil {
			return
		}
		rem.ID = m.TargetID
		rem.Provisional = true
		if !s.session.ReplaceReminder(m.TargetID, rem) {
			s.session.PrependReminder(rem)
		}
	case models.MutationDelete:
		s.session.RemoveReminder(m.TargetID)
	}
}

// Expenses returns the current working set, most recent first.
func (s *LedgerService) Expenses() []*models.Expense {
	return s.session.Expenses()
}

func (s *LedgerService) Reminders() []*models.Reminder {
	return s.session.Reminders()
}

// AddExpense records a new expense. Offline (or if the server drops midway)
// the entry gets a provisional id, shows up immediately, and is queued.
func (s *LedgerService) AddExpense(ctx context.Context, e *models.Expense) error {
	if e.SpentAt.IsZero() {
		e.SpentAt = time.Now().UTC()
	}
	if e.SpentBy == "" {
		e.SpentBy = s.session.Username()
	}

	if s.online.IsOnline() {
		confirmed, err := s.client.InsertExpense(ctx, e)
		if err == nil {
			s.session.PrependExpense(confirmed)
			return nil
		}
		if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
	}

	e.ID = models.NewProvisionalID()
	e.CreatedAt = time.Now().UTC()
	e.Provisional = true
	s.session.PrependExpense(e)
	s.enqueue(ctx, models.MutationAdd, common.TableExpenses, e.ID, e.ToRecord())
	return nil
}

// UpdateExpense applies the caller's changes to an existing entry.
func (s *LedgerService) UpdateExpense(ctx context.Context, e *models.Expense) error {
	if _, ok := s.session.FindExpense(e.ID); !ok {
		return common.ErrorNotFound
	}

	if s.online.IsOnline() && !models.IsProvisionalID(e.ID) {
		if err := s.client.UpdateExpense(ctx, e); err == nil {
			s.session.ReplaceExpense(e.ID, e)
			return nil
		} else if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
	}

	patched := *e
	patched.Provisional = true
	s.session.ReplaceExpense(e.ID, &patched)
	s.enqueue(ctx, models.MutationUpdate, common.TableExpenses, e.ID, e.ToRecord())
	return nil
}

// DeleteExpense removes an entry. Deleting a provisional entry that never
// reached the server just compacts the queue; nothing is sent.
func (s *LedgerService) DeleteExpense(ctx context.Context, id string) error {
	if _, ok := s.session.FindExpense(id); !ok {
		return common.ErrorNotFound
	}

	if models.IsProvisionalID(id) {
		s.session.RemoveExpense(id)
		if _, err := s.queue.RemoveForTarget(ctx, common.TableExpenses, id); err != nil {
			s.logger.Warn(ctx, "failed to compact queue", "target", id, "error", err)
		}
		return nil
	}

	if s.online.IsOnline() {
		if err := s.client.DeleteExpense(ctx, id); err == nil {
			s.session.RemoveExpense(id)
			return nil
		} else if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
	}

	s.session.RemoveExpense(id)
	s.enqueue(ctx, models.MutationDelete, common.TableExpenses, id, nil)
	return nil
}

func (s *LedgerService) AddReminder(ctx context.Context, r *models.Reminder) error {
	if r.Owner == "" {
		r.Owner = s.session.Username()
	}

	if s.online.IsOnline() {
		confirmed, err := s.client.InsertReminder(ctx, r)
		if err == nil {
			s.session.PrependReminder(confirmed)
			return nil
		}
		if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
	}

	r.ID = models.NewProvisionalID()
	r.CreatedAt = time.Now().UTC()
	r.Provisional = true
	s.session.PrependReminder(r)
	s.enqueue(ctx, models.MutationAdd, common.TableReminders, r.ID, r.ToRecord())
	return nil
}

func (s *LedgerService) UpdateReminder(ctx context.Context, r *models.Reminder) error {
	if _, ok := s.session.FindReminder(r.ID); !ok {
		return common.ErrorNotFound
	}

	if s.online.IsOnline() && !models.IsProvisionalID(r.ID) {
		if err := s.client.UpdateReminder(ctx, r); err == nil {
			s.session.ReplaceReminder(r.ID, r)
			return nil
		} else if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
	}

	patched := *r
	patched.Provisional = true
	s.session.ReplaceReminder(r.ID, &patched)
	s.enqueue(ctx, models.MutationUpdate, common.TableReminders, r.ID, r.ToRecord())
	return nil
}

func (s *LedgerService) DeleteReminder(ctx context.Context, id string) error {
	if _, ok := s.session.FindReminder(id); !ok {
		return common.ErrorNotFound
	}

	if models.IsProvisionalID(id) {
		s.session.RemoveReminder(id)
		if _, err := s.queue.RemoveForTarget(ctx, common.TableReminders, id); err != nil {
			s.logger.Warn(ctx, "failed to compact queue", "target", id, "error", err)
		}
		return nil
	}

	if s.online.IsOnline() {
		if err := s.client.DeleteReminder(ctx, id); err == nil {
			s.session.RemoveReminder(id)
			return nil
		} else if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
	}

	s.session.RemoveReminder(id)
	s.enqueue(ctx, models.MutationDelete, common.TableReminders, id, nil)
	return nil
}

// PendingCount reports how many mutations still wait for replay.
func (s *LedgerService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Count(ctx)
}

// enqueue records one mutation for replay. If the local database refuses
// the write the optimistic state stays visible; the user is warned that the
// entry will not survive a restart.
func (s *LedgerService) enqueue(ctx context.Context, kind models.MutationKind, table, targetID string, payload any) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger.Error(ctx, "failed to encode mutation payload", "error", err)
			s.notifier.Notify("entry kept in memory only, it may be lost on restart")
			return
		}
		raw = data
	}

	m := &models.QueuedMutation{
		Kind:       kind,
		Table:      table,
		TargetID:   targetID,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := s.queue.Enqueue(ctx, m); err != nil {
		s.logger.Error(ctx, "failed to enqueue mutation", "table", table, "kind", kind, "error", err)
		s.notifier.Notify("entry kept in memory only, it may be lost on restart")
		return
	}

	s.notifier.Notify("offline, change queued for sync")
	s.waker.Wake()
}

func expenseFromPayload(payload json.RawMessage) (*models.Expense, error) {
	var rec rpc.ExpenseRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	return models.ExpenseFromRecord(&rec), nil
}

func reminderFromPayload(payload json.RawMessage) (*models.Reminder, error) {
	var rec rpc.ReminderRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	return models.ReminderFromRecord(&rec), nil
}
