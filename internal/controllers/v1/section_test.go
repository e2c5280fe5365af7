package v1_test

import (
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/sectionledger/backend/internal/controllers/v1"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/sectionledger/backend/test"
)

func (suite *TestSuiteStandard) TestSectionsGet() {
	user := suite.createTestUser("30", "50", "20")
	suite.fund(user, models.SectionExpenses, "42.5")

	section := suite.sections(user)
	suite.Assert().Equal(user.ID, section.UserID)
	suite.Assert().True(dec("42.5").Equal(section.Expenses))

	suite.requestStatus(http.MethodGet, "/users/"+uuid.NewString()+"/sections", nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSectionsAdjust() {
	user := suite.createTestUser("30", "50", "20")
	suite.fund(user, models.SectionSavings, "500")

	r := suite.requestStatus(http.MethodPatch, userPath(user, "/sections"), map[string]any{
		"savings":     "200",
		"investments": "75",
	}, http.StatusOK)

	var response v1.Response[models.Section]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().True(dec("200").Equal(response.Data.Savings))
	suite.Assert().True(dec("75").Equal(response.Data.Investments))

	suite.assertBalances(user, "200", "0", "75")

	// The profile mirrors the savings section
	r = suite.requestStatus(http.MethodGet, userPath(user, ""), nil, http.StatusOK)
	var profile v1.Response[models.User]
	test.DecodeResponse(suite.T(), r, &profile)
	suite.Assert().True(dec("200").Equal(profile.Data.SavingsBalance))
}

func (suite *TestSuiteStandard) TestSectionsAdjustFails() {
	user := suite.createTestUser("30", "50", "20")

	r := suite.requestStatus(http.MethodPatch, userPath(user, "/sections"), ledger.Adjustment{Savings: ptr(dec("-1"))}, http.StatusBadRequest)
	suite.Assert().Contains(suite.decodeError(r), "must not be negative")

	suite.requestStatus(http.MethodPatch, userPath(user, "/sections"), "", http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSectionsOptions() {
	user := suite.createTestUser("30", "50", "20")

	r := suite.requestStatus(http.MethodOptions, userPath(user, "/sections"), nil, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH", r.Header().Get("allow"))
}
