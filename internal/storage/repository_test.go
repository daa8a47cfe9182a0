package storage

import (
	"context"
	"path/filepath"
	"testing"

	"expensebook/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite exercises the sqlite repository against a fresh
// on-disk database per test. Migrations open a second connection to the
// same path, so :memory: is not an option here.
type RepositoryTestSuite struct {
	suite.Suite
	repo *SQLiteRepository
	ctx  context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "test.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(s.T(), err, "failed to create test repository")
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.repo != nil {
		s.repo.Close()
	}
}

func (s *RepositoryTestSuite) addExpense(userID int, date core.Date, amount float64) int {
	id, err := s.repo.AddExpense(s.ctx, core.Expense{
		UserID:   userID,
		Date:     date,
		Amount:   amount,
		Category: "Food",
	})
	require.NoError(s.T(), err)
	return id
}

func (s *RepositoryTestSuite) TestAddUser() {
	id, err := s.repo.AddUser(s.ctx, "Alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, id)

	id, err = s.repo.AddUser(s.ctx, "Bob")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, id)

	users, err := s.repo.ListUsers(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), users, 2)
	assert.Equal(s.T(), "Alice", users[0].Name)
}

func (s *RepositoryTestSuite) TestAddUserRejectsBlankName() {
	id, err := s.repo.AddUser(s.ctx, "   ")
	assert.ErrorIs(s.T(), err, ErrInvalidName)
	assert.Equal(s.T(), -1, id)
}

func (s *RepositoryTestSuite) TestAddUserRejectsDuplicateCaseInsensitive() {
	_, err := s.repo.AddUser(s.ctx, "Alice")
	require.NoError(s.T(), err)

	id, err := s.repo.AddUser(s.ctx, "alice")
	assert.ErrorIs(s.T(), err, ErrDuplicateName)
	assert.Equal(s.T(), -1, id)

	users, err := s.repo.ListUsers(s.ctx)
	require.NoError(s.T(), err)
	assert.Len(s.T(), users, 1)
}

func (s *RepositoryTestSuite) TestRemoveUserKeepsExpenses() {
	uid, err := s.repo.AddUser(s.ctx, "Alice")
	require.NoError(s.T(), err)
	s.addExpense(uid, core.NewDate(2024, 1, 5), 20)

	found, err := s.repo.RemoveUser(s.ctx, uid)
	require.NoError(s.T(), err)
	assert.True(s.T(), found)

	found, err = s.repo.RemoveUser(s.ctx, uid)
	require.NoError(s.T(), err)
	assert.False(s.T(), found, "second remove should report missing")

	count, err := s.repo.CountFor(s.ctx, uid)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, count, "expenses must survive their owner")
}

func (s *RepositoryTestSuite) TestExpenseCRUD() {
	uid, err := s.repo.AddUser(s.ctx, "Alice")
	require.NoError(s.T(), err)

	id := s.addExpense(uid, core.NewDate(2024, 1, 5), 20)
	assert.Equal(s.T(), 1, id)

	updated := core.Expense{
		ID:          id,
		UserID:      uid,
		Date:        core.NewDate(2024, 1, 6),
		Amount:      15.25,
		Category:    "Transport",
		Description: "bus",
	}
	found, err := s.repo.UpdateExpense(s.ctx, updated)
	require.NoError(s.T(), err)
	assert.True(s.T(), found)

	got, err := s.repo.GetExpenses(s.ctx, uid, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), updated, got[0])

	found, err = s.repo.DeleteExpense(s.ctx, id)
	require.NoError(s.T(), err)
	assert.True(s.T(), found)

	found, err = s.repo.DeleteExpense(s.ctx, id)
	require.NoError(s.T(), err)
	assert.False(s.T(), found)
}

func (s *RepositoryTestSuite) TestGetExpensesRangeInclusive() {
	uid, err := s.repo.AddUser(s.ctx, "Alice")
	require.NoError(s.T(), err)

	s.addExpense(uid, core.NewDate(2024, 1, 1), 1)
	s.addExpense(uid, core.NewDate(2024, 1, 31), 2)
	s.addExpense(uid, core.NewDate(2024, 2, 1), 3)
	s.addExpense(uid+1, core.NewDate(2024, 1, 10), 4)

	got, err := s.repo.GetExpenses(s.ctx, uid, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 2)
	assert.Equal(s.T(), float64(1), got[0].Amount)
	assert.Equal(s.T(), float64(2), got[1].Amount)
}

func (s *RepositoryTestSuite) TestIDsNeverReused() {
	uid, err := s.repo.AddUser(s.ctx, "Alice")
	require.NoError(s.T(), err)

	first := s.addExpense(uid, core.NewDate(2024, 1, 5), 1)
	found, err := s.repo.DeleteExpense(s.ctx, first)
	require.NoError(s.T(), err)
	require.True(s.T(), found)

	second := s.addExpense(uid, core.NewDate(2024, 1, 6), 1)
	assert.Greater(s.T(), second, first)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestAllocatorsSeededFromExistingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)

	uid, err := repo.AddUser(ctx, "Alice")
	require.NoError(t, err)
	_, err = repo.AddExpense(ctx, core.Expense{UserID: uid, Date: core.NewDate(2024, 1, 5), Amount: 1, Category: "c"})
	require.NoError(t, err)
	id2, err := repo.AddExpense(ctx, core.Expense{UserID: uid, Date: core.NewDate(2024, 1, 6), Amount: 1, Category: "c"})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	nextUser, err := reopened.AddUser(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, nextUser)

	nextExpense, err := reopened.AddExpense(ctx, core.Expense{UserID: uid, Date: core.NewDate(2024, 1, 7), Amount: 1, Category: "c"})
	require.NoError(t, err)
	assert.Equal(t, id2+1, nextExpense)
}
