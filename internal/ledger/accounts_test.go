package ledger_test

import (
	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAccountOpen() {
	user, err := suite.ledger.Accounts.Open(suite.ctx, ledger.UserCreate{
		Name:               " Alex ",
		Email:              "Alex@Example.com",
		SavingsPercent:     dec("30"),
		ExpensesPercent:    dec("50"),
		InvestmentsPercent: dec("20"),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Alex", user.Name)
	suite.Assert().Equal("alex@example.com", user.Email)
	suite.Assert().Equal(models.SectionSavings, user.LeftoverAction)

	suite.assertBalances(user.ID, "0", "0", "0")
	total, err := suite.ledger.Income.Total(suite.ctx, user.ID)
	suite.Require().Nil(err)
	suite.Assert().True(total.IsZero())

	_, err = suite.ledger.Accounts.Open(suite.ctx, ledger.UserCreate{Name: "Other", Email: "alex@example.com"})
	suite.Assert().ErrorIs(err, models.ErrEmailNotUnique)
}

func (suite *TestSuiteStandard) TestAccountOpenValidation() {
	tests := []struct {
		name   string
		create ledger.UserCreate
	}{
		{"No name", ledger.UserCreate{Email: "a@example.com"}},
		{"Invalid email", ledger.UserCreate{Name: "A", Email: "not an email"}},
		{"Negative percentage", ledger.UserCreate{Name: "A", Email: "a@example.com", SavingsPercent: dec("-1")}},
		{"Percentage above 100", ledger.UserCreate{Name: "A", Email: "a@example.com", ExpensesPercent: dec("101")}},
		{"Sum above 100", ledger.UserCreate{Name: "A", Email: "a@example.com", SavingsPercent: dec("60"), InvestmentsPercent: dec("40.01")}},
		{"Invalid leftover", ledger.UserCreate{Name: "A", Email: "a@example.com", LeftoverAction: models.SectionIncome}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.ledger.Accounts.Open(suite.ctx, tt.create)
			suite.Assert().ErrorIs(err, ledger.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountUpdatePreferences() {
	user := suite.createTestUser("50", "30", "20")

	expenses := models.SectionExpenses
	updated, err := suite.ledger.Accounts.UpdatePreferences(suite.ctx, user.ID, ledger.Preferences{
		SavingsPercent: ptr(dec("40")),
		LeftoverAction: &expenses,
	})
	suite.Require().Nil(err)
	suite.Assert().True(dec("40").Equal(updated.SavingsPercent))
	suite.Assert().True(dec("30").Equal(updated.ExpensesPercent))
	suite.Assert().Equal(models.SectionExpenses, updated.LeftoverAction)

	// The resulting set of percentages must still add up to 100 at most
	_, err = suite.ledger.Accounts.UpdatePreferences(suite.ctx, user.ID, ledger.Preferences{SavingsPercent: ptr(dec("51"))})
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	stored, err := suite.ledger.Accounts.Get(suite.ctx, user.ID)
	suite.Require().Nil(err)
	suite.Assert().True(dec("40").Equal(stored.SavingsPercent))

	_, err = suite.ledger.Accounts.UpdatePreferences(suite.ctx, uuid.New(), ledger.Preferences{Name: ptr("Ghost")})
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
}

// Closing an account removes every record of that user and nothing of others.
func (suite *TestSuiteStandard) TestAccountClose() {
	user := suite.createTestUser("50", "30", "20")
	other := suite.createTestUser("50", "30", "20")

	for _, u := range []models.User{user, other} {
		suite.addIncome(u.ID, "1000")
		_, err := suite.ledger.Distribution.Distribute(suite.ctx, u.ID)
		suite.Require().Nil(err)

		goal := suite.createTestGoal(u.ID, "900", models.TransferTypeExpense)
		_, err = suite.ledger.Goals.Contribute(suite.ctx, u.ID, goal.ID, dec("100"))
		suite.Require().Nil(err)

		_, err = suite.ledger.Investments.Create(suite.ctx, u.ID, ledger.InvestmentCreate{AssetName: "Bond", Amount: dec("50")})
		suite.Require().Nil(err)

		_, err = suite.ledger.Expenses.Create(suite.ctx, u.ID, ledger.ExpenseCreate{Amount: dec("20"), Category: "Food"})
		suite.Require().Nil(err)
	}

	before := suite.transactionCount(other.ID)
	suite.Require().Nil(suite.ledger.Accounts.Close(suite.ctx, user.ID))

	for _, model := range models.Owned {
		var count int64
		suite.Require().Nil(suite.db.Model(model).Where("user_id = ?", user.ID).Count(&count).Error)
		suite.Assert().Zero(count, "%T rows left", model)

		suite.Require().Nil(suite.db.Model(model).Where("user_id = ?", other.ID).Count(&count).Error)
		suite.Assert().NotZero(count, "%T rows of other user deleted", model)
	}

	_, err := suite.ledger.Accounts.Get(suite.ctx, user.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	suite.Assert().Equal(before, suite.transactionCount(other.ID))
	suite.assertConsistent(other.ID)

	suite.Assert().ErrorIs(suite.ledger.Accounts.Close(suite.ctx, user.ID), ledger.ErrNotFound)
}
