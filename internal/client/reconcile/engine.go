// Package reconcile folds confirmed server state back into the client's
// working set. Confirmed rows are matched against provisional ones
// structurally, because the server assigns its own ids and the client must
// recognize its own entries coming back under new names.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/client/session"
	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/logging"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
)

// RemoteLister is the slice of the backend client the engine needs to
// refetch a table wholesale.
type RemoteLister interface {
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
	ListReminders(ctx context.Context) ([]*models.Reminder, error)
}

// ExpenseCache persists the confirmed expense rows across restarts.
type ExpenseCache interface {
	ReplaceAll(ctx context.Context, items []*models.Expense) error
}

// ReminderCache persists the confirmed reminder rows across restarts.
type ReminderCache interface {
	ReplaceAll(ctx context.Context, items []*models.Reminder) error
}

// Batch is the outcome of replaying one table's queued mutations: the
// confirmed rows for the inserts, plus a flag when updates or deletes were
// replayed and the table must be refetched to be precise.
type Batch struct {
	Table              string
	ConfirmedExpenses  []*models.Expense
	ConfirmedReminders []*models.Reminder
	RefetchRequired    bool
}

type Engine struct {
	session   *session.Session
	remote    RemoteLister
	expenses  ExpenseCache
	reminders ReminderCache
	logger    logging.Logger
}

func NewEngine(sess *session.Session, remote RemoteLister, expenses ExpenseCache,
	reminders ReminderCache, logger logging.Logger) *Engine {
	return &Engine{
		session:   sess,
		remote:    remote,
		expenses:  expenses,
		reminders: reminders,
		logger:    logger,
	}
}

// ApplyBatch folds a replay batch into the session and the local cache.
func (e *Engine) ApplyBatch(ctx context.Context, b *Batch) error {
	for _, exp := range b.ConfirmedExpenses {
		e.applyConfirmedExpense(exp)
	}
	for _, rem := range b.ConfirmedReminders {
		e.applyConfirmedReminder(rem)
	}

	if b.RefetchRequired {
		if err := e.Refetch(ctx, b.Table); err != nil {
			return err
		}
		return nil
	}
	return e.persist(ctx, b.Table)
}

// ApplyChange folds one realtime change event into the session. Events are
// applied idempotently: an insert for a row that is already present (our own
// write echoed back) degrades to a replace.
func (e *Engine) ApplyChange(ctx context.Context, ev *rpc.ChangeEvent) error {
	switch ev.Table {
	case common.TableExpenses:
		if err := e.applyExpenseChange(ev); err != nil {
			return err
		}
	case common.TableReminders:
		if err := e.applyReminderChange(ev); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", common.ErrorUnknownTable, ev.Table)
	}
	return e.persist(ctx, ev.Table)
}

// Refetch replaces a table with the server's current rows. Provisional rows
// still waiting in the queue stay at the head of the list so they do not
// vanish from the UI.
func (e *Engine) Refetch(ctx context.Context, table string) error {
	switch table {
	case common.TableExpenses:
		confirmed, err := e.remote.ListExpenses(ctx)
		if err != nil {
			return err
		}
		var merged []*models.Expense
		for _, cur := range e.session.Expenses() {
			if cur.Provisional {
				merged = append(merged, cur)
			}
		}
		merged = append(merged, confirmed...)
		e.session.SetExpenses(merged)
	case common.TableReminders:
		confirmed, err := e.remote.ListReminders(ctx)
		if err != nil {
			return err
		}
		var merged []*models.Reminder
		for _, cur := range e.session.Reminders() {
			if cur.Provisional {
				merged = append(merged, cur)
			}
		}
		merged = append(merged, confirmed...)
		e.session.SetReminders(merged)
	default:
		return fmt.Errorf("%w: %s", common.ErrorUnknownTable, table)
	}
	return e.persist(ctx, table)
}

func (e *Engine) applyConfirmedExpense(confirmed *models.Expense) {
	// our own write echoed back
	if e.session.ReplaceExpense(confirmed.ID, confirmed) {
		return
	}
	if id, ok := matchProvisionalExpense(e.session.Expenses(), confirmed); ok {
		e.session.ReplaceExpense(id, confirmed)
		return
	}
	e.session.PrependExpense(confirmed)
}

func (e *Engine) applyConfirmedReminder(confirmed *models.Reminder) {
	if e.session.ReplaceReminder(confirmed.ID, confirmed) {
		return
	}
	if id, ok := matchProvisionalReminder(e.session.Reminders(), confirmed); ok {
		e.session.ReplaceReminder(id, confirmed)
		return
	}
	e.session.PrependReminder(confirmed)
}

func (e *Engine) applyExpenseChange(ev *rpc.ChangeEvent) error {
	switch ev.Type {
	case rpc.ChangeInsert, rpc.ChangeUpdate:
		var rec rpc.ExpenseRecord
		if err := json.Unmarshal(ev.New, &rec); err != nil {
			return err
		}
		e.applyConfirmedExpense(models.ExpenseFromRecord(&rec))
	case rpc.ChangeDelete:
		var rec rpc.ExpenseRecord
		if err := json.Unmarshal(ev.Old, &rec); err != nil {
			return err
		}
		e.session.RemoveExpense(rec.ID)
	}
	return nil
}

func (e *Engine) applyReminderChange(ev *rpc.ChangeEvent) error {
	switch ev.Type {
	case rpc.ChangeInsert, rpc.ChangeUpdate:
		var rec rpc.ReminderRecord
		if err := json.Unmarshal(ev.New, &rec); err != nil {
			return err
		}
		e.applyConfirmedReminder(models.ReminderFromRecord(&rec))
	case rpc.ChangeDelete:
		var rec rpc.ReminderRecord
		if err := json.Unmarshal(ev.Old, &rec); err != nil {
			return err
		}
		e.session.RemoveReminder(rec.ID)
	}
	return nil
}

// persist writes the confirmed portion of a table to the local cache.
// Provisional rows are excluded; they are re-created from the queue.
func (e *Engine) persist(ctx context.Context, table string) error {
	switch table {
	case common.TableExpenses:
		var confirmed []*models.Expense
		for _, cur := range e.session.Expenses() {
			if !cur.Provisional {
				confirmed = append(confirmed, cur)
			}
		}
		if err := e.expenses.ReplaceAll(ctx, confirmed); err != nil {
			e.logger.Warn(ctx, "failed to persist expense cache", "error", err)
		}
	case common.TableReminders:
		var confirmed []*models.Reminder
		for _, cur := range e.session.Reminders() {
			if !cur.Provisional {
				confirmed = append(confirmed, cur)
			}
		}
		if err := e.reminders.ReplaceAll(ctx, confirmed); err != nil {
			e.logger.Warn(ctx, "failed to persist reminder cache", "error", err)
		}
	}
	return nil
}
