package ledger_test

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/events"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestGoal(userID uuid.UUID, target string, transferType models.TransferType) models.SavingGoal {
	goal, err := suite.ledger.Goals.Create(suite.ctx, userID, ledger.GoalCreate{
		Name:         "New laptop",
		Category:     "Electronics",
		TargetAmount: dec(target),
		TargetDate:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		TransferType: transferType,
	})
	if err != nil {
		suite.Assert().FailNow("Goal could not be created", "Error: %s", err)
	}

	return goal
}

func (suite *TestSuiteStandard) TestGoalCreate() {
	user := suite.createTestUser("50", "30", "20")

	goal := suite.createTestGoal(user.ID, "1500", models.TransferTypeInvestment)
	suite.Assert().True(goal.CurrentAmount.IsZero())
	suite.Assert().False(goal.IsCompleted)

	tests := []struct {
		name   string
		create ledger.GoalCreate
	}{
		{"No name", ledger.GoalCreate{Category: "Travel", TargetAmount: dec("100")}},
		{"Zero target", ledger.GoalCreate{Name: "Trip", Category: "Travel", TargetAmount: dec("0")}},
		{"Invalid transfer type", ledger.GoalCreate{Name: "Trip", Category: "Travel", TargetAmount: dec("100"), TransferType: "GIFT"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.ledger.Goals.Create(suite.ctx, user.ID, tt.create)
			suite.Assert().ErrorIs(err, ledger.ErrValidation)
		})
	}

	_, err := suite.ledger.Goals.Create(suite.ctx, uuid.New(), ledger.GoalCreate{Name: "Trip", Category: "Travel", TargetAmount: dec("100")})
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	goals, err := suite.ledger.Goals.List(suite.ctx, user.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(goals, 1)
}

func (suite *TestSuiteStandard) TestGoalContributePartial() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "1000")
	goal := suite.createTestGoal(user.ID, "800", models.TransferTypeExpense)

	result, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("300"))
	suite.Require().Nil(err)
	suite.Assert().False(result.Completed)
	suite.Assert().True(result.Excess.IsZero())
	suite.Assert().True(dec("300").Equal(result.Goal.CurrentAmount))
	suite.Assert().Equal("Contribution of 300 added to goal New laptop. 500 remaining.", result.Message)

	suite.assertBalances(user.ID, "700", "0", "0")
	suite.assertConsistent(user.ID)
}

func (suite *TestSuiteStandard) TestGoalContributeExact() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "1000")
	goal := suite.createTestGoal(user.ID, "800", models.TransferTypeInvestment)

	_, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("500"))
	suite.Require().Nil(err)

	result, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("300"))
	suite.Require().Nil(err)
	suite.Assert().True(result.Completed)
	suite.Assert().True(result.Goal.IsCompleted)
	suite.Assert().True(dec("800").Equal(result.Goal.CurrentAmount))
	suite.Assert().Equal("Goal completed! Amount of 800 transferred to investments section. Remember to make the investment when you're ready.", result.Message)

	suite.assertBalances(user.ID, "200", "0", "800")
	suite.assertConsistent(user.ID)

	stored, err := suite.ledger.Goals.Get(suite.ctx, user.ID, goal.ID)
	suite.Require().Nil(err)
	suite.Assert().True(stored.IsCompleted)
	suite.Assert().True(dec("800").Equal(stored.CurrentAmount))

	page, err := suite.ledger.Transactions.List(suite.ctx, user.ID, ledger.TransactionFilter{Type: string(models.TransactionTypeGoalTransfer)})
	suite.Require().Nil(err)
	suite.Require().Len(page.Data, 3)
	suite.Assert().Equal("Completed goal: New laptop - Electronics - Ready for investment", page.Data[0].Description)
	suite.Assert().Equal("Final contribution to savings goal: New laptop", page.Data[1].Description)

	suite.Assert().Len(suite.recorder.OfKind(events.KindGoalCompleted), 1)
}

// Contributing more than is missing only takes the missing part from savings.
func (suite *TestSuiteStandard) TestGoalContributeOvershoot() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "1000")
	goal := suite.createTestGoal(user.ID, "800", models.TransferTypeExpense)

	result, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("1000"))
	suite.Require().Nil(err)
	suite.Assert().True(result.Completed)
	suite.Assert().True(dec("200").Equal(result.Excess))
	suite.Assert().True(dec("800").Equal(result.Goal.CurrentAmount))
	suite.Assert().Contains(result.Message, "Excess amount of 200 returned to savings.")
	suite.Assert().Contains(result.Message, "Remember to make the purchase")

	suite.assertBalances(user.ID, "200", "800", "0")
	suite.assertConsistent(user.ID)

	page, err := suite.ledger.Transactions.List(suite.ctx, user.ID, ledger.TransactionFilter{Type: string(models.TransactionTypeGoalTransfer)})
	suite.Require().Nil(err)
	suite.Require().Len(page.Data, 2)
	suite.Assert().True(dec("800").Equal(page.Data[1].Amount), "pulled %s from savings", page.Data[1].Amount)
}

func (suite *TestSuiteStandard) TestGoalContributeFailures() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "100")
	goal := suite.createTestGoal(user.ID, "500", models.TransferTypeExpense)

	_, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("150"))
	suite.Assert().ErrorIs(err, ledger.ErrInsufficientFunds)

	_, err = suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("0"))
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	_, err = suite.ledger.Goals.Contribute(suite.ctx, user.ID, uuid.New(), dec("10"))
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	small := suite.createTestGoal(user.ID, "50", models.TransferTypeExpense)
	_, err = suite.ledger.Goals.Contribute(suite.ctx, user.ID, small.ID, dec("50"))
	suite.Require().Nil(err)

	_, err = suite.ledger.Goals.Contribute(suite.ctx, user.ID, small.ID, dec("10"))
	suite.Assert().ErrorIs(err, ledger.ErrInvalidState)

	suite.assertBalances(user.ID, "50", "50", "0")
	suite.assertConsistent(user.ID)
}

// Concurrent contributions never complete a goal twice.
func (suite *TestSuiteStandard) TestGoalContributeConcurrent() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "1000")
	goal := suite.createTestGoal(user.ID, "500", models.TransferTypeExpense)

	amounts := []string{"300", "300", "300"}
	results := make([]ledger.Contribution, len(amounts))
	errs := make([]error, len(amounts))

	var wg sync.WaitGroup
	for i, amount := range amounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec(amount))
		}()
	}
	wg.Wait()

	completions := 0
	invalid := 0
	for i := range amounts {
		if errs[i] != nil {
			suite.Assert().ErrorIs(errs[i], ledger.ErrInvalidState)
			invalid++
			continue
		}

		if results[i].Completed {
			completions++
		}
	}

	suite.Assert().Equal(1, completions)
	suite.Assert().Equal(1, invalid)
	suite.Assert().Len(suite.recorder.OfKind(events.KindGoalCompleted), 1)

	stored, err := suite.ledger.Goals.Get(suite.ctx, user.ID, goal.ID)
	suite.Require().Nil(err)
	suite.Assert().True(stored.IsCompleted)
	suite.Assert().True(dec("500").Equal(stored.CurrentAmount))

	suite.assertBalances(user.ID, "500", "500", "0")
	suite.assertConsistent(user.ID)
}

func (suite *TestSuiteStandard) TestGoalTransferToSavings() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "400")
	goal := suite.createTestGoal(user.ID, "1000", models.TransferTypeExpense)

	_, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("400"))
	suite.Require().Nil(err)

	updated, err := suite.ledger.Goals.TransferToSavings(suite.ctx, user.ID, goal.ID, dec("150"))
	suite.Require().Nil(err)
	suite.Assert().True(dec("250").Equal(updated.CurrentAmount))

	_, err = suite.ledger.Goals.TransferToSavings(suite.ctx, user.ID, goal.ID, dec("250.01"))
	suite.Assert().ErrorIs(err, ledger.ErrInsufficientFunds)

	suite.assertBalances(user.ID, "150", "0", "0")
	suite.assertConsistent(user.ID)
}

func (suite *TestSuiteStandard) TestGoalTransferFromCompletedGoal() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "100")
	goal := suite.createTestGoal(user.ID, "100", models.TransferTypeExpense)

	_, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("100"))
	suite.Require().Nil(err)

	_, err = suite.ledger.Goals.TransferToSavings(suite.ctx, user.ID, goal.ID, dec("50"))
	suite.Assert().ErrorIs(err, ledger.ErrInvalidState)
	suite.assertConsistent(user.ID)
}

func (suite *TestSuiteStandard) TestGoalDeleteRefunds() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "1000")
	goal := suite.createTestGoal(user.ID, "800", models.TransferTypeExpense)

	_, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("300"))
	suite.Require().Nil(err)
	suite.assertBalances(user.ID, "700", "0", "0")

	cancellation, err := suite.ledger.Goals.Delete(suite.ctx, user.ID, goal.ID)
	suite.Require().Nil(err)
	suite.Assert().True(dec("300").Equal(cancellation.Refunded))

	suite.assertBalances(user.ID, "1000", "0", "0")
	suite.assertConsistent(user.ID)

	_, err = suite.ledger.Goals.Get(suite.ctx, user.ID, goal.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
}

func (suite *TestSuiteStandard) TestGoalDeleteCompleted() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "100")
	goal := suite.createTestGoal(user.ID, "100", models.TransferTypeExpense)

	_, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("100"))
	suite.Require().Nil(err)

	cancellation, err := suite.ledger.Goals.Delete(suite.ctx, user.ID, goal.ID)
	suite.Require().Nil(err)
	suite.Assert().True(cancellation.Refunded.IsZero())

	suite.assertBalances(user.ID, "0", "100", "0")
	suite.assertConsistent(user.ID)
}

func (suite *TestSuiteStandard) TestGoalUpdate() {
	user := suite.createTestUser("50", "30", "20")
	suite.fund(user.ID, models.SectionSavings, "500")
	goal := suite.createTestGoal(user.ID, "800", models.TransferTypeExpense)

	_, err := suite.ledger.Goals.Contribute(suite.ctx, user.ID, goal.ID, dec("400"))
	suite.Require().Nil(err)

	investment := models.TransferTypeInvestment
	updated, err := suite.ledger.Goals.Update(suite.ctx, user.ID, goal.ID, ledger.GoalUpdate{
		Name:         ptr("  Gaming laptop "),
		TransferType: &investment,
		TargetAmount: ptr(dec("900")),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Gaming laptop", updated.Name)
	suite.Assert().Equal(models.TransferTypeInvestment, updated.TransferType)
	suite.Assert().True(dec("400").Equal(updated.CurrentAmount))

	_, err = suite.ledger.Goals.Update(suite.ctx, user.ID, goal.ID, ledger.GoalUpdate{TargetAmount: ptr(dec("400"))})
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	_, err = suite.ledger.Goals.Update(suite.ctx, user.ID, goal.ID, ledger.GoalUpdate{TargetAmount: ptr(decimal.Zero)})
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	gift := models.TransferType("GIFT")
	_, err = suite.ledger.Goals.Update(suite.ctx, user.ID, goal.ID, ledger.GoalUpdate{TransferType: &gift})
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	_, err = suite.ledger.Goals.Update(suite.ctx, user.ID, uuid.New(), ledger.GoalUpdate{Name: ptr("x")})
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
}
