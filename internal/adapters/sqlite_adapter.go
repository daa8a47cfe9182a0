// Package adapters bridges error-returning repositories onto the
// sentinel-style backend.Repository surface. Swallowed errors are logged;
// the caller sees the same -1/false signals the file store produces.
package adapters

import (
	"context"
	"errors"

	"expensebook/internal/core"
	"expensebook/internal/log"
	"expensebook/internal/storage"
)

// SQLiteAdapter adapts storage.SQLiteRepository to backend.Repository.
type SQLiteAdapter struct {
	repo *storage.SQLiteRepository
	log  *log.Logger
}

func NewSQLiteAdapter(repo *storage.SQLiteRepository, logger *log.Logger) *SQLiteAdapter {
	if logger == nil {
		logger = log.Default("sqlite")
	}
	return &SQLiteAdapter{repo: repo, log: logger}
}

func (a *SQLiteAdapter) ListUsers() []core.User {
	users, err := a.repo.ListUsers(context.Background())
	if err != nil {
		a.log.Warn("list users failed", "error", err)
		return nil
	}
	return users
}

func (a *SQLiteAdapter) AddUser(name string) int {
	id, err := a.repo.AddUser(context.Background(), name)
	if err != nil {
		if !errors.Is(err, storage.ErrInvalidName) && !errors.Is(err, storage.ErrDuplicateName) {
			a.log.Warn("add user failed", "error", err)
		}
		return -1
	}
	return id
}

func (a *SQLiteAdapter) RemoveUser(id int) bool {
	found, err := a.repo.RemoveUser(context.Background(), id)
	if err != nil {
		a.log.Warn("remove user failed", "error", err, "user_id", id)
		return false
	}
	return found
}

func (a *SQLiteAdapter) AddExpense(e core.Expense) int {
	id, err := a.repo.AddExpense(context.Background(), e)
	if err != nil {
		a.log.Warn("add expense failed", "error", err)
		return -1
	}
	return id
}

func (a *SQLiteAdapter) UpdateExpense(e core.Expense) bool {
	found, err := a.repo.UpdateExpense(context.Background(), e)
	if err != nil {
		a.log.Warn("update expense failed", "error", err, "expense_id", e.ID)
		return false
	}
	return found
}

func (a *SQLiteAdapter) DeleteExpense(id int) bool {
	found, err := a.repo.DeleteExpense(context.Background(), id)
	if err != nil {
		a.log.Warn("delete expense failed", "error", err, "expense_id", id)
		return false
	}
	return found
}

func (a *SQLiteAdapter) GetExpenses(userID int, from, to core.Date) []core.Expense {
	expenses, err := a.repo.GetExpenses(context.Background(), userID, from, to)
	if err != nil {
		a.log.Warn("query expenses failed", "error", err, "user_id", userID)
		return nil
	}
	return expenses
}

func (a *SQLiteAdapter) TotalFor(records []core.Expense) float64 {
	return core.Total(records)
}

func (a *SQLiteAdapter) CountFor(userID int) int {
	count, err := a.repo.CountFor(context.Background(), userID)
	if err != nil {
		a.log.Warn("count expenses failed", "error", err, "user_id", userID)
		return 0
	}
	return count
}
