// Package store implements the file-backed expense repository. It owns the
// user and expense collections, assigns ids, and writes the whole state to
// disk after every mutation. Callers only ever see detached copies.
package store

import (
	"strings"

	"expensebook/internal/core"
	"expensebook/internal/log"
)

// FileRepository holds all state in memory and persists it as a single
// JSON document. It assumes single-writer, single-process access; there
// is no locking and no notion of partial writes.
type FileRepository struct {
	path string
	log  *log.Logger

	users    []core.User
	expenses []core.Expense

	// Independent monotonic allocators, never reused. Restored to
	// max(id)+1 on load.
	nextUserID    int
	nextExpenseID int
}

// Open loads existing state from path. A missing or unreadable file means a
// fresh repository; load problems are never surfaced to the caller.
func Open(path string, logger *log.Logger) *FileRepository {
	if logger == nil {
		logger = log.Default("store")
	}
	r := &FileRepository{
		path:          path,
		log:           logger,
		nextUserID:    1,
		nextExpenseID: 1,
	}
	r.load()
	return r
}

// ListUsers returns a copy of the user list in insertion order.
func (r *FileRepository) ListUsers() []core.User {
	return append([]core.User(nil), r.users...)
}

// AddUser registers a new user and returns its id, or -1 if the trimmed
// name is empty or collides case-insensitively with an existing name.
// Failure leaves the state untouched.
func (r *FileRepository) AddUser(name string) int {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return -1
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Name, trimmed) {
			return -1
		}
	}

	u := core.User{ID: r.nextUserID, Name: trimmed}
	r.nextUserID++
	r.users = append(r.users, u)
	r.save()
	return u.ID
}

// RemoveUser deletes the first user with the given id and reports whether
// one was found. Expenses referencing the user are left in place.
func (r *FileRepository) RemoveUser(id int) bool {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			r.save()
			return true
		}
	}
	return false
}

// AddExpense appends the record under a freshly assigned id, discarding
// whatever id the caller put in. The record is stored as given: validation
// only happens on reload, so an invalid record survives until then.
func (r *FileRepository) AddExpense(e core.Expense) int {
	e.ID = r.nextExpenseID
	r.nextExpenseID++
	r.expenses = append(r.expenses, e)
	r.save()
	return e.ID
}

// UpdateExpense replaces the stored record whose id matches e.ID in full,
// owner and date included. Returns false without touching state when the
// id is unknown.
func (r *FileRepository) UpdateExpense(e core.Expense) bool {
	for i := range r.expenses {
		if r.expenses[i].ID == e.ID {
			r.expenses[i] = e
			r.save()
			return true
		}
	}
	return false
}

// DeleteExpense removes the first expense with the given id and reports
// whether one was found.
func (r *FileRepository) DeleteExpense(id int) bool {
	for i, e := range r.expenses {
		if e.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			r.save()
			return true
		}
	}
	return false
}
