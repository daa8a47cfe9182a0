package core

import (
	"strings"
	"time"
)

// DateLayout is the on-disk calendar date format.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar date with no time-of-day component. The valid
	// flag distinguishes "no date" from the first calendar day, which is
	// a real date; the zero value is invalid.
	Date struct {
		time.Time
		valid bool
	}

	// User owns expenses through Expense.UserID. Users are created by the
	// repository and never mutated afterwards.
	User struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	// Expense is a single spending record. IDs are assigned by the
	// repository; a caller-supplied ID is discarded on insert.
	Expense struct {
		ID          int     `json:"id"`
		UserID      int     `json:"userId"`
		Date        Date    `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}
)

// NewDate builds a Date at UTC midnight so equal dates compare equal.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), valid: true}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t, valid: true}, nil
}

// IsValid reports whether the date holds an actual calendar day.
func (d Date) IsValid() bool {
	return d.valid
}

// String formats the date as YYYY-MM-DD; an invalid date is empty, so it
// can never round-trip back into a valid one.
func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return d.Format(DateLayout)
}

// InRange is the inclusive interval test used by expense queries.
func (d Date) InRange(from, to Date) bool {
	return !d.Time.Before(from.Time) && !d.Time.After(to.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	d.valid = true
	return nil
}

// IsValid reports whether the user is complete enough to keep:
// an assigned id and a non-blank name.
func (u User) IsValid() bool {
	return u.ID >= 0 && strings.TrimSpace(u.Name) != ""
}

// IsValid reports whether the expense is complete enough to keep.
// The description may be empty; everything else must be set.
func (e Expense) IsValid() bool {
	return e.ID >= 0 && e.UserID >= 0 && e.Date.IsValid() &&
		e.Amount >= 0 && e.Category != ""
}

// Total sums the amounts of the given records. It operates on whatever
// slice it is handed, so callers can total a pre-filtered view.
func Total(records []Expense) float64 {
	var total float64
	for _, e := range records {
		total += e.Amount
	}
	return total
}
