package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/client/notify"
	"github.com/dmitrijs2005/homeledger/internal/client/session"
	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/logging"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQueue struct {
	nextSeq int64
	items   []*models.QueuedMutation
}

func (q *memQueue) Enqueue(ctx context.Context, m *models.QueuedMutation) error {
	q.nextSeq++
	m.Seq = q.nextSeq
	q.items = append(q.items, m)
	return nil
}

func (q *memQueue) DrainInOrder(ctx context.Context, table string) ([]*models.QueuedMutation, error) {
	var result []*models.QueuedMutation
	for _, m := range q.items {
		if m.Table == table {
			result = append(result, m)
		}
	}
	return result, nil
}

func (q *memQueue) Remove(ctx context.Context, seq int64) error {
	for i, m := range q.items {
		if m.Seq == seq {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (q *memQueue) RemoveForTarget(ctx context.Context, table string, targetID string) (int64, error) {
	var kept []*models.QueuedMutation
	var removed int64
	for _, m := range q.items {
		if m.Table == table && m.TargetID == targetID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	q.items = kept
	return removed, nil
}

func (q *memQueue) Count(ctx context.Context) (int, error) {
	return len(q.items), nil
}

type memExpenseCache struct {
	items []*models.Expense
}

func (c *memExpenseCache) GetAll(ctx context.Context) ([]*models.Expense, error) {
	return c.items, nil
}

func (c *memExpenseCache) ReplaceAll(ctx context.Context, items []*models.Expense) error {
	c.items = items
	return nil
}

type memReminderCache struct {
	items []*models.Reminder
}

func (c *memReminderCache) GetAll(ctx context.Context) ([]*models.Reminder, error) {
	return c.items, nil
}

func (c *memReminderCache) ReplaceAll(ctx context.Context, items []*models.Reminder) error {
	c.items = items
	return nil
}

// fakeBackend implements the client interface in memory.
type fakeBackend struct {
	online        bool
	nextID        int
	expenses      []*models.Expense
	reminders     []*models.Reminder
	inserts       int
	updates       int
	deletes       int
	receiptGetURL string
}

func (f *fakeBackend) Close() error                                              { return nil }
func (f *fakeBackend) Register(ctx context.Context, u string, p string) error    { return nil }
func (f *fakeBackend) Login(ctx context.Context, u string, p string) error       { return nil }
func (f *fakeBackend) Ping(ctx context.Context) error                            { return nil }
func (f *fakeBackend) PresignReceiptPut(ctx context.Context) (string, string, error) {
	return "receipts/k", "http://s3/put", nil
}
func (f *fakeBackend) PresignReceiptGet(ctx context.Context, key string) (string, error) {
	if f.receiptGetURL != "" {
		return f.receiptGetURL, nil
	}
	return "http://s3/get", nil
}
func (f *fakeBackend) Subscribe(ctx context.Context, tables []string) (<-chan *rpc.ChangeEvent, error) {
	ch := make(chan *rpc.ChangeEvent)
	close(ch)
	return ch, nil
}

func (f *fakeBackend) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return f.expenses, nil
}

func (f *fakeBackend) InsertExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	f.nextID++
	f.inserts++
	confirmed := *e
	confirmed.ID = "srv-1"
	confirmed.Provisional = false
	return &confirmed, nil
}

func (f *fakeBackend) UpdateExpense(ctx context.Context, e *models.Expense) error {
	f.updates++
	return nil
}

func (f *fakeBackend) DeleteExpense(ctx context.Context, id string) error {
	f.deletes++
	return nil
}

func (f *fakeBackend) ListReminders(ctx context.Context) ([]*models.Reminder, error) {
	return f.reminders, nil
}

func (f *fakeBackend) InsertReminder(ctx context.Context, r *models.Reminder) (*models.Reminder, error) {
	confirmed := *r
	confirmed.ID = "srv-rem"
	confirmed.Provisional = false
	return &confirmed, nil
}

func (f *fakeBackend) UpdateReminder(ctx context.Context, r *models.Reminder) error { return nil }
func (f *fakeBackend) DeleteReminder(ctx context.Context, id string) error          { return nil }

type fixedOnline struct {
	online bool
}

func (o *fixedOnline) IsOnline() bool { return o.online }

type countingWaker struct {
	wakes int
}

func (w *countingWaker) Wake() { w.wakes++ }

type fixture struct {
	svc     *LedgerService
	backend *fakeBackend
	queue   *memQueue
	session *session.Session
	online  *fixedOnline
	waker   *countingWaker
}

func newFixture(online bool) *fixture {
	f := &fixture{
		backend: &fakeBackend{},
		queue:   &memQueue{},
		session: session.NewSession(),
		online:  &fixedOnline{online: online},
		waker:   &countingWaker{},
	}
	f.session.SetUsername("alice")
	f.svc = NewLedgerService(f.backend, f.session, f.queue, &memExpenseCache{}, &memReminderCache{},
		f.online, f.waker, notify.Nop{}, logging.NewSlogLogger(slog.Default()))
	return f
}

func newExpense(description string, amount int64) *models.Expense {
	return &models.Expense{
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Category:    "food",
	}
}

func TestAddExpense_OnlineGoesStraightThrough(t *testing.T) {
	f := newFixture(true)

	err := f.svc.AddExpense(context.Background(), newExpense("groceries", 42))
	require.NoError(t, err)

	assert.Equal(t, 1, f.backend.inserts)
	n, _ := f.queue.Count(context.Background())
	assert.Zero(t, n)

	items := f.session.Expenses()
	require.Len(t, items, 1)
	assert.Equal(t, "srv-1", items[0].ID)
	assert.False(t, items[0].Provisional)
}

func TestAddExpense_OfflineQueuesProvisional(t *testing.T) {
	f := newFixture(false)

	err := f.svc.AddExpense(context.Background(), newExpense("groceries", 42))
	require.NoError(t, err)

	assert.Zero(t, f.backend.inserts, "no server call while offline")
	assert.Equal(t, 1, f.waker.wakes)

	items := f.session.Expenses()
	require.Len(t, items, 1)
	assert.True(t, items[0].Provisional)
	assert.True(t, models.IsProvisionalID(items[0].ID))
	assert.Equal(t, "alice", items[0].SpentBy, "spender defaults to the logged-in user")

	muts, err := f.queue.DrainInOrder(context.Background(), common.TableExpenses)
	require.NoError(t, err)
	require.Len(t, muts, 1)
	assert.Equal(t, models.MutationAdd, muts[0].Kind)
	assert.Equal(t, items[0].ID, muts[0].TargetID)
}

func TestUpdateExpense_OfflineQueuesSecondMutation(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.AddExpense(ctx, newExpense("groceries", 42)))
	prov := f.session.Expenses()[0]

	changed := *prov
	changed.Amount = decimal.NewFromInt(50)
	require.NoError(t, f.svc.UpdateExpense(ctx, &changed))

	muts, err := f.queue.DrainInOrder(ctx, common.TableExpenses)
	require.NoError(t, err)
	require.Len(t, muts, 2, "add and update both queued, in order")
	assert.Equal(t, models.MutationAdd, muts[0].Kind)
	assert.Equal(t, models.MutationUpdate, muts[1].Kind)
	assert.Equal(t, muts[0].TargetID, muts[1].TargetID)

	assert.True(t, f.session.Expenses()[0].Amount.Equal(decimal.NewFromInt(50)),
		"optimistic state shows the new amount immediately")
}

func TestDeleteExpense_ProvisionalCompactsQueue(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.AddExpense(ctx, newExpense("groceries", 42)))
	prov := f.session.Expenses()[0]

	require.NoError(t, f.svc.DeleteExpense(ctx, prov.ID))

	assert.Empty(t, f.session.Expenses())
	n, _ := f.queue.Count(ctx)
	assert.Zero(t, n, "deleting an unsynced entry leaves no trace in the queue")
}

func TestDeleteExpense_ConfirmedOfflineQueuesDelete(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	f.session.SetExpenses([]*models.Expense{{ID: "srv-1", Description: "rent",
		Amount: decimal.NewFromInt(900), SpentBy: "alice"}})

	require.NoError(t, f.svc.DeleteExpense(ctx, "srv-1"))

	assert.Empty(t, f.session.Expenses())
	muts, _ := f.queue.DrainInOrder(ctx, common.TableExpenses)
	require.Len(t, muts, 1)
	assert.Equal(t, models.MutationDelete, muts[0].Kind)
	assert.Equal(t, "srv-1", muts[0].TargetID)
}

func TestUpdateExpense_UnknownEntry(t *testing.T) {
	f := newFixture(true)
	err := f.svc.UpdateExpense(context.Background(), &models.Expense{ID: "missing"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLoadInitial_OfflineRestoresCacheAndProvisionalEntries(t *testing.T) {
	ctx := context.Background()

	// first session: offline, one confirmed row cached earlier, one entry
	// added offline
	f := newFixture(false)
	cache := &memExpenseCache{items: []*models.Expense{{ID: "srv-1", Description: "rent",
		Amount: decimal.NewFromInt(900), SpentBy: "alice", SpentAt: time.Now()}}}
	f.svc.expenses = cache
	require.NoError(t, f.svc.AddExpense(ctx, newExpense("snacks", 7)))

	// simulated restart: fresh session and service over the same queue and cache
	restarted := newFixture(false)
	restarted.queue.items = f.queue.items
	restarted.svc.expenses = cache

	require.NoError(t, restarted.svc.LoadInitial(ctx))

	items := restarted.session.Expenses()
	require.Len(t, items, 2)
	assert.True(t, items[0].Provisional, "offline entry reappears after restart")
	assert.Equal(t, "snacks", items[0].Description)
	assert.Equal(t, "srv-1", items[1].ID)
}

func TestLoadInitial_OnlineRefreshesCache(t *testing.T) {
	f := newFixture(true)
	cache := &memExpenseCache{}
	f.svc.expenses = cache
	f.backend.expenses = []*models.Expense{{ID: "srv-9", Description: "fuel",
		Amount: decimal.NewFromInt(60), SpentBy: "bob"}}

	require.NoError(t, f.svc.LoadInitial(context.Background()))

	require.Len(t, f.session.Expenses(), 1)
	require.Len(t, cache.items, 1)
	assert.Equal(t, "srv-9", cache.items[0].ID)
}
