package realtime

import (
	"testing"

	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesInterestedSubscribers(t *testing.T) {
	h := NewHub()

	expCh, cancelExp := h.Subscribe([]string{common.TableExpenses})
	defer cancelExp()
	allCh, cancelAll := h.Subscribe(nil)
	defer cancelAll()
	remCh, cancelRem := h.Subscribe([]string{common.TableReminders})
	defer cancelRem()

	ev := &rpc.ChangeEvent{Type: rpc.ChangeInsert, Table: common.TableExpenses}
	h.Publish(ev)

	assert.Equal(t, ev, <-expCh)
	assert.Equal(t, ev, <-allCh)
	select {
	case got := <-remCh:
		t.Fatalf("reminder subscriber received unexpected event: %+v", got)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe(nil)
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after unsubscribe must not panic.
	h.Publish(&rpc.ChangeEvent{Type: rpc.ChangeDelete, Table: common.TableExpenses})

	// Cancel is idempotent.
	cancel()
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe(nil)
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.Publish(&rpc.ChangeEvent{Type: rpc.ChangeInsert, Table: common.TableExpenses})
	}

	assert.Len(t, ch, subscriberBuffer)
}
