package v1_test

import (
	"net/http"

	v1 "github.com/sectionledger/backend/internal/controllers/v1"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/sectionledger/backend/test"
)

func (suite *TestSuiteStandard) addIncome(user models.User, amount string) models.Income {
	r := suite.requestStatus(http.MethodPost, userPath(user, "/income"), ledger.IncomeCreate{
		Amount:      dec(amount),
		Description: "Salary",
	}, http.StatusCreated)

	var response v1.Response[models.Income]
	test.DecodeResponse(suite.T(), r, &response)
	return response.Data
}

func (suite *TestSuiteStandard) incomeTotal(user models.User) v1.IncomeTotal {
	r := suite.requestStatus(http.MethodGet, userPath(user, "/income/total"), nil, http.StatusOK)

	var response v1.Response[v1.IncomeTotal]
	test.DecodeResponse(suite.T(), r, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestIncomeAdd() {
	user := suite.createTestUser("30", "50", "20")

	income := suite.addIncome(user, "2500")
	suite.Assert().Equal(models.IncomeTypeRegular, income.Type)
	suite.addIncome(user, "500")

	suite.Assert().True(dec("3000").Equal(suite.incomeTotal(user).Total))

	r := suite.requestStatus(http.MethodGet, userPath(user, "/income"), nil, http.StatusOK)
	var page ledger.Page[models.Income]
	test.DecodeResponse(suite.T(), r, &page)
	suite.Assert().Equal(int64(2), page.Total)
	suite.Assert().True(dec("500").Equal(page.Data[0].Amount), "newest income must come first")
}

func (suite *TestSuiteStandard) TestIncomeAddFails() {
	user := suite.createTestUser("30", "50", "20")

	suite.requestStatus(http.MethodPost, userPath(user, "/income"), ledger.IncomeCreate{Amount: dec("0")}, http.StatusBadRequest)
	suite.requestStatus(http.MethodPost, userPath(user, "/income"), ledger.IncomeCreate{Amount: dec("10"), Type: "bonus"}, http.StatusBadRequest)
	suite.requestStatus(http.MethodPost, userPath(user, "/income"), ledger.IncomeCreate{Amount: dec("10"), Type: models.IncomeTypeInvestmentReturn}, http.StatusBadRequest)

	suite.Assert().True(suite.incomeTotal(user).Total.IsZero())
}

func (suite *TestSuiteStandard) TestIncomeInvestmentReturn() {
	user := suite.createTestUser("30", "50", "20")
	suite.fund(user, models.SectionInvestments, "1000")
	investment := suite.createTestInvestment(user, "1000")

	body := ledger.IncomeCreate{Amount: dec("1120"), Type: models.IncomeTypeInvestmentReturn, InvestmentID: &investment.ID}
	suite.requestStatus(http.MethodPost, userPath(user, "/income"), body, http.StatusCreated)

	r := suite.requestStatus(http.MethodGet, userPath(user, "/investments/"+investment.ID.String()), nil, http.StatusOK)
	var response v1.Response[models.Investment]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().True(response.Data.IsClosed)
	suite.Assert().True(dec("1120").Equal(response.Data.TotalReturn))

	suite.requestStatus(http.MethodPost, userPath(user, "/income"), body, http.StatusConflict)
	suite.Assert().True(dec("1120").Equal(suite.incomeTotal(user).Total))
}

func (suite *TestSuiteStandard) TestIncomeTransfer() {
	user := suite.createTestUser("30", "50", "20")
	suite.addIncome(user, "300")

	r := suite.requestStatus(http.MethodPost, userPath(user, "/income/transfer"), v1.IncomeTransferEditable{
		Amount:  dec("200"),
		Section: models.SectionExpenses,
	}, http.StatusCreated)

	var response v1.Response[models.Transaction]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().Equal(models.SectionIncome, response.Data.FromSection)
	suite.Assert().Equal(models.SectionExpenses, response.Data.ToSection)

	suite.assertBalances(user, "0", "200", "0")
	suite.Assert().True(dec("100").Equal(suite.incomeTotal(user).Total))

	r = suite.requestStatus(http.MethodPost, userPath(user, "/income/transfer"), v1.IncomeTransferEditable{
		Amount:  dec("150"),
		Section: models.SectionSavings,
	}, http.StatusBadRequest)
	suite.Assert().Contains(suite.decodeError(r), "insufficient funds")
}

func (suite *TestSuiteStandard) TestDistributionPreview() {
	user := suite.createTestUser("33", "33", "33")
	suite.addIncome(user, "333")

	r := suite.requestStatus(http.MethodGet, userPath(user, "/distribution"), nil, http.StatusOK)

	var response v1.Response[ledger.Allocation]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().True(dec("333").Equal(response.Data.Total))
	suite.Assert().True(dec("109").Equal(response.Data.Savings))
	suite.Assert().True(dec("109").Equal(response.Data.Expenses))
	suite.Assert().True(dec("109").Equal(response.Data.Investments))
	suite.Assert().True(dec("6").Equal(response.Data.Leftover))
	suite.Assert().Equal(models.SectionSavings, response.Data.LeftoverSection)

	// The preview does not move anything
	suite.assertBalances(user, "0", "0", "0")
}

func (suite *TestSuiteStandard) TestDistribute() {
	user := suite.createTestUser("33", "33", "33")
	suite.addIncome(user, "333")

	r := suite.requestStatus(http.MethodPost, userPath(user, "/distribution"), nil, http.StatusOK)

	var response v1.Response[models.Section]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().True(dec("115").Equal(response.Data.Savings))

	suite.assertBalances(user, "115", "109", "109")
	suite.Assert().True(suite.incomeTotal(user).Total.IsZero())

	r = suite.requestStatus(http.MethodGet, userPath(user, "/transactions?type=leftover"), nil, http.StatusOK)
	var page ledger.TransactionPage
	test.DecodeResponse(suite.T(), r, &page)
	suite.Require().Len(page.Data, 1)
	suite.Assert().True(dec("6").Equal(page.Data[0].Amount))

	r = suite.requestStatus(http.MethodPost, userPath(user, "/distribution"), nil, http.StatusBadRequest)
	suite.Assert().Contains(suite.decodeError(r), "no income available to distribute")
}
