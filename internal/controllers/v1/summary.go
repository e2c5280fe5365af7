package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/types"
)

func (co Controller) RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", httputil.OptionsGet)
	r.GET("/:month", co.GetMonthSummary)
}

// GetMonthSummary returns the summary of a month
//
//	@Summary		Get month summary
//	@Description	Returns the income and the flows of every section within a month
//	@Tags			Summary
//	@Produce		json
//	@Success		200		{object}	Response[ledger.MonthSummary]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/users/{userId}/summary/{month} [get]
func (co Controller) GetMonthSummary(c *gin.Context) {
	var uri URIUserMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	month, err := types.ParseMonth(uri.Month)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	summary, err := co.ledger.Summaries.Month(c.Request.Context(), uri.UserID.UUID, month)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[ledger.MonthSummary]{Data: summary})
}
