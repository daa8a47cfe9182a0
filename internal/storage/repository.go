// Package storage provides the sqlite-backed repository. It mirrors the
// observable semantics of the file store: ids come from in-process
// allocators seeded to max(id)+1, duplicate user names are rejected
// case-insensitively, and removing a user never cascades.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"expensebook/internal/core"

	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidName signals an empty (after trimming) user name.
	ErrInvalidName = errors.New("user name is empty")
	// ErrDuplicateName signals a case-insensitive user name collision.
	ErrDuplicateName = errors.New("user name already taken")
)

type SQLiteRepository struct {
	db *sql.DB

	// Allocators live here, not in AUTOINCREMENT columns, so ids behave
	// exactly like the file store's: monotonic, never reused, restored
	// from the highest stored id at open.
	nextUserID    int
	nextExpenseID int
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(dbPath, migrationsFS); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.seedAllocators(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed id allocators: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) seedAllocators(ctx context.Context) error {
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM users`).Scan(&r.nextUserID); err != nil {
		return fmt.Errorf("max user id: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM expenses`).Scan(&r.nextExpenseID); err != nil {
		return fmt.Errorf("max expense id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListUsers returns all users in insertion order.
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// AddUser inserts a new user under the next user id and returns it.
func (r *SQLiteRepository) AddUser(ctx context.Context, name string) (int, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return -1, ErrInvalidName
	}

	var taken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE name = ? COLLATE NOCASE)`, trimmed).Scan(&taken)
	if err != nil {
		return -1, fmt.Errorf("check duplicate name: %w", err)
	}
	if taken {
		return -1, ErrDuplicateName
	}

	id := r.nextUserID
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name) VALUES (?, ?)`, id, trimmed); err != nil {
		return -1, fmt.Errorf("insert user: %w", err)
	}
	r.nextUserID++
	return id, nil
}

// RemoveUser deletes the user and reports whether it existed. Expenses
// referencing the user stay in place.
func (r *SQLiteRepository) RemoveUser(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// AddExpense stores the record under the next expense id, discarding the
// caller-supplied id. The record is not validated on the way in.
func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (int, error) {
	id := r.nextExpenseID
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, user_id, date, amount, category, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, e.UserID, e.Date.String(), e.Amount, e.Category, e.Description)
	if err != nil {
		return -1, fmt.Errorf("insert expense: %w", err)
	}
	r.nextExpenseID++
	return id, nil
}

// UpdateExpense replaces every stored field of the record matching e.ID.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET user_id = ?, date = ?, amount = ?, category = ?, description = ?
		 WHERE id = ?`,
		e.UserID, e.Date.String(), e.Amount, e.Category, e.Description, e.ID)
	if err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// GetExpenses returns the user's expenses within [from, to] inclusive, in
// insertion order. ISO dates compare correctly as text.
func (r *SQLiteRepository) GetExpenses(ctx context.Context, userID int, from, to core.Date) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, amount, category, description
		 FROM expenses
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY id`,
		userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e    core.Expense
			date string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &date, &e.Amount, &e.Category, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		e.Date = d
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CountFor counts the user's expenses regardless of date.
func (r *SQLiteRepository) CountFor(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return count, nil
}
