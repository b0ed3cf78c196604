// Package realtime fans change events out to subscribed client streams.
// Every committed write on the ledger is published here and pushed to all
// clients that subscribed to the affected table.
package realtime

import (
	"sync"

	"github.com/dmitrijs2005/homeledger/internal/rpc"
)

// subscriberBuffer bounds the per-subscriber queue. A subscriber that falls
// this far behind loses events; clients recover by refetching on resync.
const subscriberBuffer = 64

type subscriber struct {
	tables map[string]struct{}
	ch     chan *rpc.ChangeEvent
}

// Hub is a simple in-process broadcast hub. Safe for concurrent use.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]*subscriber
	next int64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]*subscriber)}
}

// Subscribe registers interest in the given tables (all tables when empty)
// and returns the event channel plus an unsubscribe function. The channel is
// closed on unsubscribe.
func (h *Hub) Subscribe(tables []string) (<-chan *rpc.ChangeEvent, func()) {
	s := &subscriber{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan *rpc.ChangeEvent, subscriberBuffer),
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = s
	h.mu.Unlock()

	once := sync.Once{}
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel
}

// Publish delivers ev to every subscriber interested in its table. Delivery
// is non-blocking; a full subscriber queue drops the event.
func (h *Hub) Publish(ev *rpc.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.subs {
		if len(s.tables) > 0 {
			if _, ok := s.tables[ev.Table]; !ok {
				continue
			}
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
}
