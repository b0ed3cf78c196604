// Package sync replays the durable mutation queue against the backend once
// connectivity returns. Mutations for a table are replayed strictly in the
// order they were enqueued, and each one is removed only after the server
// has accepted it, so an interrupted replay resumes where it stopped.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	gosync "sync"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/client/notify"
	"github.com/dmitrijs2005/homeledger/internal/client/reconcile"
	"github.com/dmitrijs2005/homeledger/internal/client/repositories/queue"
	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/logging"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
)

// RemoteStore is the slice of the backend client the replayer drives.
type RemoteStore interface {
	InsertExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	InsertReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, reminder *models.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
}

// Applier folds replay results back into the working set.
type Applier interface {
	ApplyBatch(ctx context.Context, b *reconcile.Batch) error
}

type Replayer struct {
	queue    queue.Repository
	remote   RemoteStore
	applier  Applier
	notifier notify.Notifier
	logger   logging.Logger

	mu   gosync.Mutex
	wake chan struct{}
}

func NewReplayer(q queue.Repository, remote RemoteStore, applier Applier,
	notifier notify.Notifier, logger logging.Logger) *Replayer {
	return &Replayer{
		queue:    q,
		remote:   remote,
		applier:  applier,
		notifier: notifier,
		logger:   logger,
		wake:     make(chan struct{}, 1),
	}
}

// Wake requests a sync attempt at the next opportunity. It never blocks;
// coalescing multiple requests into one attempt is fine.
func (r *Replayer) Wake() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// WakeC is consumed by the application loop that decides when to run
// SyncNow.
func (r *Replayer) WakeC() <-chan struct{} {
	return r.wake
}

// SyncNow drains both tables. Only one replay runs at a time; a concurrent
// call waits for the running one and then drains whatever is left. With an
// empty queue it returns quietly, so reconnect edges with nothing pending
// do not toast the user.
func (r *Replayer) SyncNow(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pending, err := r.queue.Count(ctx); err == nil && pending == 0 {
		return nil
	}

	errExpenses := r.replayExpenses(ctx)
	errReminders := r.replayReminders(ctx)

	remaining, countErr := r.queue.Count(ctx)
	if countErr == nil {
		if remaining == 0 {
			r.notifier.Notify("all changes synced")
		} else {
			r.notifier.Notify(fmt.Sprintf("sync incomplete, %d change(s) still pending", remaining))
		}
	}

	return errors.Join(errExpenses, errReminders)
}

func (r *Replayer) replayExpenses(ctx context.Context) error {
	muts, err := r.queue.DrainInOrder(ctx, common.TableExpenses)
	if err != nil {
		return err
	}
	if len(muts) == 0 {
		return nil
	}

	// maps provisional ids to the server ids assigned during this replay,
	// so later updates and deletes for the same entity find their target
	idMap := map[string]string{}
	batch := &reconcile.Batch{Table: common.TableExpenses}
	var replayErr error

	for _, m := range muts {
		target, ok := r.resolveTarget(ctx, m, idMap)
		if !ok {
			batch.RefetchRequired = true
			continue
		}

		switch m.Kind {
		case models.MutationAdd:
			var rec rpc.ExpenseRecord
			if err := json.Unmarshal(m.Payload, &rec); err != nil {
				r.discard(ctx, m, err)
				continue
			}
			exp := models.ExpenseFromRecord(&rec)
			confirmed, err := r.remote.InsertExpense(ctx, exp)
			if err != nil {
				if replayErr = r.classify(ctx, m, err); replayErr != nil {
					goto done
				}
				continue
			}
			idMap[m.TargetID] = confirmed.ID
			batch.ConfirmedExpenses = append(batch.ConfirmedExpenses, confirmed)
			r.removeReplayed(ctx, m)

		case models.MutationUpdate:
			var rec rpc.ExpenseRecord
			if err := json.Unmarshal(m.Payload, &rec); err != nil {
				r.discard(ctx, m, err)
				continue
			}
			exp := models.ExpenseFromRecord(&rec)
			exp.ID = target
			if err := r.remote.UpdateExpense(ctx, exp); err != nil {
				if replayErr = r.classify(ctx, m, err); replayErr != nil {
					goto done
				}
				batch.RefetchRequired = true
				continue
			}
			batch.RefetchRequired = true
			r.removeReplayed(ctx, m)

		case models.MutationDelete:
			if err := r.remote.DeleteExpense(ctx, target); err != nil {
				if replayErr = r.classify(ctx, m, err); replayErr != nil {
					goto done
				}
				batch.RefetchRequired = true
				continue
			}
			batch.RefetchRequired = true
			r.removeReplayed(ctx, m)
		}
	}

done:
	if len(batch.ConfirmedExpenses) > 0 || batch.RefetchRequired {
		if err := r.applier.ApplyBatch(ctx, batch); err != nil {
			return errors.Join(replayErr, err)
		}
	}
	return replayErr
}

func (r *Replayer) replayReminders(ctx context.Context) error {
	muts, err := r.queue.DrainInOrder(ctx, common.TableReminders)
	if err != nil {
		return err
	}
	if len(muts) == 0 {
		return nil
	}

	idMap := map[string]string{}
	batch := &reconcile.Batch{Table: common.TableReminders}
	var replayErr error

	for _, m := range muts {
		target, ok := r.resolveTarget(ctx, m, idMap)
		if !ok {
			batch.RefetchRequired = true
			continue
		}

		switch m.Kind {
		case models.MutationAdd:
			var rec rpc.ReminderRecord
			if err := json.Unmarshal(m.Payload, &rec); err != nil {
				r.discard(ctx, m, err)
				continue
			}
			rem := models.ReminderFromRecord(&rec)
			confirmed, err := r.remote.InsertReminder(ctx, rem)
			if err != nil {
				if replayErr = r.classify(ctx, m, err); replayErr != nil {
					goto done
				}
				continue
			}
			idMap[m.TargetID] = confirmed.ID
			batch.ConfirmedReminders = append(batch.ConfirmedReminders, confirmed)
			r.removeReplayed(ctx, m)

		case models.MutationUpdate:
			var rec rpc.ReminderRecord
			if err := json.Unmarshal(m.Payload, &rec); err != nil {
				r.discard(ctx, m, err)
				continue
			}
			rem := models.ReminderFromRecord(&rec)
			rem.ID = target
			if err := r.remote.UpdateReminder(ctx, rem); err != nil {
				if replayErr = r.classify(ctx, m, err); replayErr != nil {
					goto done
				}
				batch.RefetchRequired = true
				continue
			}
			batch.RefetchRequired = true
			r.removeReplayed(ctx, m)

		case models.MutationDelete:
			if err := r.remote.DeleteReminder(ctx, target); err != nil {
				if replayErr = r.classify(ctx, m, err); replayErr != nil {
					goto done
				}
				batch.RefetchRequired = true
				continue
			}
			batch.RefetchRequired = true
			r.removeReplayed(ctx, m)
		}
	}

done:
	if len(batch.ConfirmedReminders) > 0 || batch.RefetchRequired {
		if err := r.applier.ApplyBatch(ctx, batch); err != nil {
			return errors.Join(replayErr, err)
		}
	}
	return replayErr
}

// resolveTarget translates the mutation's target to a server id. Adds keep
// their provisional id; updates and deletes aimed at a provisional entity
// use the id assigned when the matching add was replayed earlier in this
// pass. A provisional target with no mapping means the add was lost or
// rejected; the mutation is dropped and the table refetched.
func (r *Replayer) resolveTarget(ctx context.Context, m *models.QueuedMutation, idMap map[string]string) (string, bool) {
	if m.Kind == models.MutationAdd || !models.IsProvisionalID(m.TargetID) {
		return m.TargetID, true
	}
	if id, ok := idMap[m.TargetID]; ok {
		return id, true
	}
	r.discard(ctx, m, errors.New("no confirmed entity for provisional target"))
	return "", false
}

// classify decides whether a replay error stops the table. Connectivity
// errors leave the mutation queued and halt the pass; anything else means
// the server rejected the mutation, which is dropped so it cannot wedge
// the queue.
func (r *Replayer) classify(ctx context.Context, m *models.QueuedMutation, err error) error {
	if errors.Is(err, client.ErrUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.logger.Info(ctx, "replay interrupted, server unavailable", "table", m.Table, "seq", m.Seq)
		return err
	}
	r.discard(ctx, m, err)
	return nil
}

func (r *Replayer) discard(ctx context.Context, m *models.QueuedMutation, cause error) {
	r.logger.Warn(ctx, "dropping queued mutation", "table", m.Table, "seq", m.Seq,
		"kind", m.Kind, "error", cause)
	r.notifier.Notify(fmt.Sprintf("a queued %s for %s could not be synced and was dropped", m.Kind, m.Table))
	if err := r.queue.Remove(ctx, m.Seq); err != nil {
		r.logger.Error(ctx, "failed to remove queued mutation", "seq", m.Seq, "error", err)
	}
}

func (r *Replayer) removeReplayed(ctx context.Context, m *models.QueuedMutation) {
	if err := r.queue.Remove(ctx, m.Seq); err != nil {
		r.logger.Error(ctx, "failed to remove replayed mutation", "seq", m.Seq, "error", err)
	}
}
