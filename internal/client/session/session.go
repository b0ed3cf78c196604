// Package session holds the client's in-memory working set: the rows the
// UI renders right now, including provisional entries that have not been
// confirmed by the server yet. All access is mutex-guarded because the REPL,
// the sync loop, and the realtime feed touch it concurrently.
package session

import (
	"sync"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
)

type Session struct {
	mu        sync.RWMutex
	username  string
	expenses  []*models.Expense
	reminders []*models.Reminder
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetUsername(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = name
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Reset drops all cached state, e.g. when a different user logs in.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.expenses = nil
	s.reminders = nil
}

// Expenses returns a snapshot of the current expense list, most recent
// first. The slice is a copy; the pointed-to rows are shared.
func (s *Session) Expenses() []*models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Expense, len(s.expenses))
	copy(result, s.expenses)
	return result
}

func (s *Session) SetExpenses(items []*models.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = make([]*models.Expense, len(items))
	copy(s.expenses, items)
}

// PrependExpense puts a new row at the head of the list so the most recent
// entry renders first.
func (s *Session) PrependExpense(e *models.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]*models.Expense{e}, s.expenses...)
}

func (s *Session) FindExpense(id string) (*models.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// ReplaceExpense swaps the row with the given id for the supplied one,
// keeping its position in the list. Returns false if no row matched.
func (s *Session) ReplaceExpense(id string, e *models.Expense) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.expenses {
		if cur.ID == id {
			s.expenses[i] = e
			return true
		}
	}
	return false
}

func (s *Session) RemoveExpense(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.expenses {
		if cur.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true
		}
	}
	return false
}

// Reminders returns a snapshot of the current reminder list.
func (s *Session) Reminders() []*models.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Reminder, len(s.reminders))
	copy(result, s.reminders)
	return result
}

func (s *Session) SetReminders(items []*models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = make([]*models.Reminder, len(items))
	copy(s.reminders, items)
}

func (s *Session) PrependReminder(r *models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append([]*models.Reminder{r}, s.reminders...)
}

func (s *Session) FindReminder(id string) (*models.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reminders {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

func (s *Session) ReplaceReminder(id string, r *models.Reminder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.reminders {
		if cur.ID == id {
			s.reminders[i] = r
			return true
		}
	}
	return false
}

func (s *Session) RemoveReminder(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.reminders {
		if cur.ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return true
		}
	}
	return false
}
