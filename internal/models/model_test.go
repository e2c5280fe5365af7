package models_test

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestIDsAreTimeOrdered() {
	first := suite.createTestUser(models.User{Email: "a@example.com"})
	second := suite.createTestUser(models.User{Email: "b@example.com"})

	assert.Equal(suite.T(), uuid.Version(7), first.ID.Version())
	assert.Less(suite.T(), first.ID.String(), second.ID.String())
}

func (suite *TestSuiteStandard) TestPresetIDIsKept() {
	id := uuid.New()
	user := suite.createTestUser(models.User{DefaultModel: models.DefaultModel{ID: id}, Email: "preset@example.com"})
	assert.Equal(suite.T(), id, user.ID)
}

func (suite *TestSuiteStandard) TestUserDefaults() {
	user := suite.createTestUser(models.User{Name: "  Alex ", Email: " ALEX@Example.com"})

	assert.Equal(suite.T(), "Alex", user.Name)
	assert.Equal(suite.T(), "alex@example.com", user.Email)
	assert.Equal(suite.T(), models.SectionSavings, user.LeftoverAction)
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	user := suite.createTestUser(models.User{Email: "utc@example.com"})

	var found models.User
	err := suite.db.First(&found, "id = ?", user.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), time.UTC, found.CreatedAt.Location())
	assert.Equal(suite.T(), time.UTC, found.UpdatedAt.Location())
}

func (suite *TestSuiteStandard) TestTrimWhitespace() {
	user := suite.createTestUser(models.User{Email: "trim@example.com"})

	goal := models.SavingGoal{UserID: user.ID, Name: " Laptop\t", Category: " Tech ", TargetAmount: decimal.NewFromInt(10)}
	assert.Nil(suite.T(), suite.db.Create(&goal).Error)
	assert.Equal(suite.T(), "Laptop", goal.Name)
	assert.Equal(suite.T(), "Tech", goal.Category)

	expense := models.Expense{UserID: user.ID, Category: " Food ", Description: "  lunch ", Amount: decimal.NewFromInt(5)}
	assert.Nil(suite.T(), suite.db.Create(&expense).Error)
	assert.Equal(suite.T(), "Food", expense.Category)
	assert.Equal(suite.T(), "lunch", expense.Description)
	assert.False(suite.T(), expense.Date.IsZero(), "Expense date must default to now")

	description := "  Distribution from income to savings \n"
	transaction := suite.createTestTransaction(models.Transaction{UserID: user.ID, Type: models.TransactionTypeManual, ToSection: models.SectionSavings, Amount: decimal.NewFromInt(1), Description: description})
	assert.Equal(suite.T(), strings.TrimSpace(description), transaction.Description)
}

func (suite *TestSuiteStandard) TestSectionNames() {
	tests := []struct {
		name       models.SectionName
		valid      bool
		hasBalance bool
	}{
		{models.SectionNone, true, false},
		{models.SectionIncome, true, false},
		{models.SectionSavings, true, true},
		{models.SectionExpenses, true, true},
		{models.SectionInvestments, true, true},
		{"checking", false, false},
	}

	for _, tt := range tests {
		assert.Equal(suite.T(), tt.valid, tt.name.Valid(), "Valid() for %q", tt.name)
		assert.Equal(suite.T(), tt.hasBalance, tt.name.HasBalance(), "HasBalance() for %q", tt.name)
	}
}

func (suite *TestSuiteStandard) TestSectionBalanceAccessors() {
	var s models.Section
	s.SetBalance(models.SectionExpenses, decimal.NewFromInt(12))
	s.SetBalance(models.SectionIncome, decimal.NewFromInt(99))

	assert.True(suite.T(), s.Balance(models.SectionExpenses).Equal(decimal.NewFromInt(12)))
	assert.True(suite.T(), s.Balance(models.SectionSavings).IsZero())
	assert.True(suite.T(), s.Balance(models.SectionIncome).IsZero())
}

func (suite *TestSuiteStandard) TestTransferTypeDestination() {
	assert.Equal(suite.T(), models.SectionInvestments, models.TransferTypeInvestment.Destination())
	assert.Equal(suite.T(), models.SectionExpenses, models.TransferTypeExpense.Destination())
	assert.Equal(suite.T(), models.SectionExpenses, models.TransferTypeNone.Destination())
}

func (suite *TestSuiteStandard) TestTransactionTypes() {
	for _, t := range models.TransactionTypes {
		assert.True(suite.T(), t.Valid())
	}
	assert.False(suite.T(), models.TransactionType("transfer").Valid())
}
