package v1_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/sectionledger/backend/internal/controllers/v1"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/sectionledger/backend/test"
)

func (suite *TestSuiteStandard) TestUserCreate() {
	user := suite.createTestUser("30", "50", "20")

	suite.Assert().NotEqual(uuid.Nil, user.ID)
	suite.Assert().True(dec("30").Equal(user.SavingsPercent))
	suite.Assert().True(user.SavingsBalance.IsZero())

	suite.assertBalances(user, "0", "0", "0")
}

func (suite *TestSuiteStandard) TestUserCreateFails() {
	existing := suite.createTestUser("30", "50", "20")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken body", `{"name": 2`, http.StatusBadRequest},
		{"No name", ledger.UserCreate{Email: "a@example.com"}, http.StatusBadRequest},
		{"Invalid email", ledger.UserCreate{Name: "A", Email: "not an email"}, http.StatusBadRequest},
		{"Percentages above 100", ledger.UserCreate{Name: "A", Email: "b@example.com", SavingsPercent: dec("60"), ExpensesPercent: dec("50")}, http.StatusBadRequest},
		{"Invalid leftover action", ledger.UserCreate{Name: "A", Email: "c@example.com", LeftoverAction: models.SectionIncome}, http.StatusBadRequest},
		{"Duplicate email", ledger.UserCreate{Name: "A", Email: existing.Email}, http.StatusConflict},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.service, http.MethodPost, "http://example.com/v1/users", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestUserGet() {
	user := suite.createTestUser("30", "50", "20")

	r := suite.requestStatus(http.MethodGet, userPath(user, ""), nil, http.StatusOK)

	var response v1.Response[models.User]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().Equal(user.ID, response.Data.ID)
	suite.Assert().Equal(user.Email, response.Data.Email)
}

func (suite *TestSuiteStandard) TestUserGetFails() {
	suite.requestStatus(http.MethodGet, "/users/"+uuid.NewString(), nil, http.StatusNotFound)

	r := suite.requestStatus(http.MethodGet, "/users/not-a-uuid", nil, http.StatusBadRequest)
	suite.Assert().Contains(suite.decodeError(r), "not a valid UUID")

	suite.requestStatus(http.MethodGet, "/users/"+uuid.Nil.String(), nil, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUserUpdate() {
	user := suite.createTestUser("30", "50", "20")

	r := suite.requestStatus(http.MethodPatch, userPath(user, ""), map[string]any{
		"name":           "Renamed",
		"savingsPercent": "40",
		"leftoverAction": "investments",
	}, http.StatusOK)

	var response v1.Response[models.User]
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().Equal("Renamed", response.Data.Name)
	suite.Assert().True(dec("40").Equal(response.Data.SavingsPercent))
	suite.Assert().True(dec("50").Equal(response.Data.ExpensesPercent))
	suite.Assert().Equal(models.SectionInvestments, response.Data.LeftoverAction)
}

func (suite *TestSuiteStandard) TestUserUpdateFails() {
	user := suite.createTestUser("30", "50", "20")

	r := suite.requestStatus(http.MethodPatch, userPath(user, ""), map[string]any{"savingsPercent": "31"}, http.StatusBadRequest)
	suite.Assert().Contains(suite.decodeError(r), "must not add up to more than 100")

	suite.requestStatus(http.MethodPatch, userPath(user, ""), `{"name": `, http.StatusBadRequest)
	suite.requestStatus(http.MethodPatch, "/users/"+uuid.NewString(), map[string]any{"name": "Nobody"}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUserDelete() {
	user := suite.createTestUser("30", "50", "20")
	other := suite.createTestUser("30", "50", "20")
	suite.fund(user, models.SectionSavings, "100")

	r := suite.requestStatus(http.MethodDelete, userPath(user, ""), nil, http.StatusNoContent)
	suite.Assert().Empty(r.Body.String())

	suite.requestStatus(http.MethodGet, userPath(user, ""), nil, http.StatusNotFound)
	suite.requestStatus(http.MethodGet, userPath(user, "/sections"), nil, http.StatusNotFound)
	suite.requestStatus(http.MethodGet, userPath(other, ""), nil, http.StatusOK)

	suite.requestStatus(http.MethodDelete, userPath(user, ""), nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUserOptions() {
	user := suite.createTestUser("30", "50", "20")

	r := suite.requestStatus(http.MethodOptions, userPath(user, ""), nil, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	suite.requestStatus(http.MethodOptions, "/users/"+uuid.NewString(), nil, http.StatusNotFound)
	suite.requestStatus(http.MethodOptions, "/users/"+strings.Repeat("x", 36), nil, http.StatusBadRequest)
}
