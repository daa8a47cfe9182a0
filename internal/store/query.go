package store

import "expensebook/internal/core"

// GetExpenses returns copies of the expenses owned by userID whose date
// falls within [from, to], both bounds inclusive, in storage order.
func (r *FileRepository) GetExpenses(userID int, from, to core.Date) []core.Expense {
	var result []core.Expense
	for _, e := range r.expenses {
		if e.UserID == userID && e.Date.InRange(from, to) {
			result = append(result, e)
		}
	}
	return result
}

// TotalFor sums the amounts of the given records. The slice is whatever
// the caller passes in, typically a GetExpenses result.
func (r *FileRepository) TotalFor(records []core.Expense) float64 {
	return core.Total(records)
}

// CountFor counts all expenses owned by userID regardless of date.
func (r *FileRepository) CountFor(userID int) int {
	count := 0
	for _, e := range r.expenses {
		if e.UserID == userID {
			count++
		}
	}
	return count
}
