package store

import (
	"encoding/json"
	"os"

	"expensebook/internal/core"
)

// On-disk document shape. Users and expenses are kept as raw messages on
// the way in so one broken entry cannot take the rest of the file with it.
type (
	document struct {
		Users    []core.User    `json:"users"`
		Expenses []core.Expense `json:"expenses"`
	}

	rawDocument struct {
		Users    []json.RawMessage `json:"users"`
		Expenses []json.RawMessage `json:"expenses"`
	}

	// expenseEntry mirrors core.Expense with a raw owner field: legacy
	// files predate userId, and older tools wrote it with the wrong type,
	// so it is decoded tolerantly rather than structurally.
	expenseEntry struct {
		ID          int             `json:"id"`
		UserID      json.RawMessage `json:"userId"`
		Date        core.Date       `json:"date"`
		Amount      float64         `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
	}
)

// ownerID reads a userId value: absent, null, or non-numeric owners all
// mean "no owner" (-1), which the legacy repair below then fills in.
func ownerID(raw json.RawMessage) int {
	var id int
	if len(raw) == 0 || json.Unmarshal(raw, &id) != nil {
		return -1
	}
	return id
}

// save overwrites the target file with the full state. The in-memory
// mutation already happened, so a write failure is only logged: callers
// observe the same result either way, but durability is not guaranteed
// to match memory after a failed write.
func (r *FileRepository) save() {
	doc := document{
		Users:    r.users,
		Expenses: r.expenses,
	}
	// Slices marshal as null when nil; the file format wants arrays.
	if doc.Users == nil {
		doc.Users = []core.User{}
	}
	if doc.Expenses == nil {
		doc.Expenses = []core.Expense{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		r.log.Warn("failed to encode repository state", "error", err, "path", r.path)
		return
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		r.log.Warn("failed to persist repository state", "error", err, "path", r.path)
	}
}

// load replaces the in-memory state with the file's contents. A missing or
// corrupt file leaves the repository empty with both allocators at 1.
// Entries that fail validation after the legacy-owner repair are dropped.
func (r *FileRepository) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn("failed to read data file, starting empty", "error", err, "path", r.path)
		}
		return
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		r.log.Warn("corrupt data file, starting empty", "error", err, "path", r.path)
		return
	}

	r.users = nil
	r.nextUserID = 1
	for _, msg := range raw.Users {
		var u core.User
		if err := json.Unmarshal(msg, &u); err != nil || !u.IsValid() {
			r.log.Debug("dropping invalid user entry", "entry", string(msg))
			continue
		}
		r.users = append(r.users, u)
		if u.ID >= r.nextUserID {
			r.nextUserID = u.ID + 1
		}
	}

	r.expenses = nil
	r.nextExpenseID = 1
	for _, msg := range raw.Expenses {
		var entry expenseEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			r.log.Debug("dropping unreadable expense entry", "entry", string(msg))
			continue
		}

		e := core.Expense{
			ID:          entry.ID,
			UserID:      ownerID(entry.UserID),
			Date:        entry.Date,
			Amount:      entry.Amount,
			Category:    entry.Category,
			Description: entry.Description,
		}
		// Legacy files carried no owner. Assign such records to the first
		// loaded user; "first in load order" is what old data expects.
		if e.UserID < 0 && len(r.users) > 0 {
			e.UserID = r.users[0].ID
			r.log.Debug("assigned legacy expense to first user", "expense_id", e.ID, "user_id", e.UserID)
		}

		if !e.IsValid() {
			r.log.Debug("dropping invalid expense entry", "expense_id", e.ID)
			continue
		}
		r.expenses = append(r.expenses, e)
		if e.ID >= r.nextExpenseID {
			r.nextExpenseID = e.ID + 1
		}
	}

	r.log.Info("loaded repository state",
		"path", r.path,
		"users", len(r.users),
		"expenses", len(r.expenses))
}
