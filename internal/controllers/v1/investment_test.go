package v1_test

import (
	"net/http"

	v1 "github.com/sectionledger/backend/internal/controllers/v1"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/sectionledger/backend/test"
)

func (suite *TestSuiteStandard) createTestInvestment(user models.User, amount string) models.Investment {
	r := suite.requestStatus(http.MethodPost, userPath(user, "/investments"), ledger.InvestmentCreate{
		AssetName:      "MSCI World ETF",
		InvestmentType: "etf",
		Amount:         dec(amount),
	}, http.StatusCreated)

	var response v1.Response[models.Investment]
	test.DecodeResponse(suite.T(), r, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestInvestments() {
	user := suite.createTestUser("30", "50", "20")
	suite.fund(user, models.SectionInvestments, "1500")

	investment := suite.createTestInvestment(user, "1000")
	suite.Assert().False(investment.IsClosed)
	suite.assertBalances(user, "0", "0", "500")

	r := suite.requestStatus(http.MethodGet, userPath(user, "/investments"), nil, http.StatusOK)
	var page ledger.Page[models.Investment]
	test.DecodeResponse(suite.T(), r, &page)
	suite.Assert().Equal(int64(1), page.Total)

	path := userPath(user, "/investments/"+investment.ID.String())
	r = suite.requestStatus(http.MethodPatch, path, map[string]any{"notes": "Monthly savings plan"}, http.StatusOK)
	var response v1.Response[models.Investment]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().Equal("Monthly savings plan", response.Data.Notes)
	suite.Assert().Equal("MSCI World ETF", response.Data.AssetName)

	r = suite.requestStatus(http.MethodDelete, path, nil, http.StatusNoContent)
	suite.Assert().Empty(r.Body.String())
	suite.assertBalances(user, "0", "0", "1500")

	suite.requestStatus(http.MethodGet, path, nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestInvestmentsCreateFails() {
	user := suite.createTestUser("30", "50", "20")
	suite.fund(user, models.SectionInvestments, "100")

	suite.requestStatus(http.MethodPost, userPath(user, "/investments"), ledger.InvestmentCreate{InvestmentType: "etf", Amount: dec("10")}, http.StatusBadRequest)
	suite.requestStatus(http.MethodPost, userPath(user, "/investments"), ledger.InvestmentCreate{AssetName: "Gold", InvestmentType: "commodity", Amount: dec("0")}, http.StatusBadRequest)

	r := suite.requestStatus(http.MethodPost, userPath(user, "/investments"), ledger.InvestmentCreate{AssetName: "Gold", InvestmentType: "commodity", Amount: dec("101")}, http.StatusBadRequest)
	suite.Assert().Contains(suite.decodeError(r), "insufficient funds in investments")

	suite.assertBalances(user, "0", "0", "100")
}

// Deleting a closed investment does not refund anything.
func (suite *TestSuiteStandard) TestInvestmentsDeleteClosed() {
	user := suite.createTestUser("30", "50", "20")
	suite.fund(user, models.SectionInvestments, "1000")
	investment := suite.createTestInvestment(user, "1000")

	suite.requestStatus(http.MethodPost, userPath(user, "/income"), ledger.IncomeCreate{
		Amount:       dec("1100"),
		Type:         models.IncomeTypeInvestmentReturn,
		InvestmentID: &investment.ID,
	}, http.StatusCreated)

	suite.requestStatus(http.MethodDelete, userPath(user, "/investments/"+investment.ID.String()), nil, http.StatusNoContent)
	suite.assertBalances(user, "0", "0", "0")
}
