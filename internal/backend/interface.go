package backend

import "expensebook/internal/core"

// Repository is the surface the presentation layer talks to. Failure is
// signaled through return values only: a negative id or a false bool,
// never a panic, so call sites stay total and branch-free.
type Repository interface {
	// ListUsers returns a copy of the user list in insertion order.
	ListUsers() []core.User
	// AddUser trims the name and returns the new user's id, or -1 when
	// the name is blank or collides case-insensitively.
	AddUser(name string) int
	// RemoveUser reports whether a user with the id existed. Expenses
	// referencing the user are left in place.
	RemoveUser(id int) bool

	// AddExpense assigns the next expense id, ignoring the one supplied.
	AddExpense(e core.Expense) int
	// UpdateExpense replaces the whole record matching e.ID.
	UpdateExpense(e core.Expense) bool
	// DeleteExpense reports whether an expense with the id existed.
	DeleteExpense(id int) bool

	// GetExpenses filters by exact owner and inclusive date range.
	GetExpenses(userID int, from, to core.Date) []core.Expense
	// TotalFor sums whatever slice it is given.
	TotalFor(records []core.Expense) float64
	// CountFor counts the owner's expenses regardless of date.
	CountFor(userID int) int
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result pairs a repository with its optional cleanup.
type Result struct {
	Repository Repository
	Cleanup    CleanupFunc
}

// Type selects a repository implementation.
type Type string

const (
	// FileBackend persists state as a single JSON document. The default.
	FileBackend Type = "file"
	// SQLiteBackend persists state in a sqlite database.
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
