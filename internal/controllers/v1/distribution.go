package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (co Controller) RegisterDistributionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetDistribution)
	r.POST("", co.Distribute)
}

// GetDistribution previews a distribution
//
//	@Summary		Preview distribution
//	@Description	Returns how the undistributed income would be split across the sections right now
//	@Tags			Distribution
//	@Produce		json
//	@Success		200		{object}	Response[ledger.Allocation]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId}/distribution [get]
func (co Controller) GetDistribution(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	user, err := co.ledger.Accounts.Get(c.Request.Context(), uri.UserID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	total, err := co.ledger.Income.Total(c.Request.Context(), user.ID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[ledger.Allocation]{Data: ledger.Allocate(total, user)})
}

// Distribute distributes the income pool
//
//	@Summary		Distribute income
//	@Description	Splits all undistributed income across the sections according to the user's percentages. Returns the new balances.
//	@Tags			Distribution
//	@Produce		json
//	@Success		200		{object}	Response[models.Section]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId}/distribution [post]
func (co Controller) Distribute(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	section, err := co.ledger.Distribution.Distribute(c.Request.Context(), uri.UserID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Section]{Data: section})
}
