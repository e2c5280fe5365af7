package ledger_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestExpenseLifecycle() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionExpenses, "300")

	date := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	expense, err := suite.ledger.Expenses.Create(suite.ctx, user.ID, ledger.ExpenseCreate{
		Amount:      dec("42.5"),
		Category:    "Groceries",
		Description: "Weekly shopping",
		Date:        date,
	})
	suite.Require().Nil(err)
	suite.Assert().True(date.Equal(expense.Date))
	suite.assertBalances(user.ID, "0", "257.5", "0")

	updated, err := suite.ledger.Expenses.Update(suite.ctx, user.ID, expense.ID, ledger.ExpenseUpdate{Amount: ptr(dec("100"))})
	suite.Require().Nil(err)
	suite.Assert().True(dec("100").Equal(updated.Amount))
	suite.Assert().Equal("Groceries", updated.Category)
	suite.assertBalances(user.ID, "0", "200", "0")
	suite.assertConsistent(user.ID)

	refunds, err := suite.ledger.Transactions.List(suite.ctx, user.ID, ledger.TransactionFilter{Type: "refund"})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), refunds.Total)

	_, err = suite.ledger.Expenses.Update(suite.ctx, user.ID, expense.ID, ledger.ExpenseUpdate{Amount: ptr(dec("301"))})
	suite.Assert().ErrorIs(err, ledger.ErrInsufficientFunds)
	suite.assertBalances(user.ID, "0", "200", "0")

	stored, err := suite.ledger.Expenses.Get(suite.ctx, user.ID, expense.ID)
	suite.Require().Nil(err)
	suite.Assert().True(dec("100").Equal(stored.Amount))

	page, err := suite.ledger.Expenses.List(suite.ctx, user.ID, ledger.PageOptions{})
	suite.Require().Nil(err)
	suite.Assert().Len(page.Data, 1)

	suite.Require().Nil(suite.ledger.Expenses.Delete(suite.ctx, user.ID, expense.ID))
	suite.assertBalances(user.ID, "0", "300", "0")
	suite.assertConsistent(user.ID)
}

func (suite *TestSuiteStandard) TestExpenseFailures() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionExpenses, "10")

	_, err := suite.ledger.Expenses.Create(suite.ctx, user.ID, ledger.ExpenseCreate{Amount: dec("20"), Category: "Rent"})
	suite.Assert().ErrorIs(err, ledger.ErrInsufficientFunds)

	_, err = suite.ledger.Expenses.Create(suite.ctx, user.ID, ledger.ExpenseCreate{Amount: dec("5")})
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	_, err = suite.ledger.Expenses.Update(suite.ctx, user.ID, uuid.New(), ledger.ExpenseUpdate{Category: ptr("Rent")})
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	page, err := suite.ledger.Expenses.List(suite.ctx, user.ID, ledger.PageOptions{})
	suite.Require().Nil(err)
	suite.Assert().Empty(page.Data)
	suite.assertBalances(user.ID, "0", "10", "0")
}
