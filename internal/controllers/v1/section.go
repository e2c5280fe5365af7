package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (co Controller) RegisterSectionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPatch)
	r.GET("", co.GetSections)
	r.PATCH("", co.AdjustSections)
}

// GetSections returns the section balances
//
//	@Summary		Get sections
//	@Description	Returns the current balances of the savings, expenses and investments sections
//	@Tags			Sections
//	@Produce		json
//	@Success		200		{object}	Response[models.Section]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId}/sections [get]
func (co Controller) GetSections(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	section, err := co.ledger.Sections.Snapshot(c.Request.Context(), uri.UserID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Section]{Data: section})
}

// AdjustSections sets section balances
//
//	@Summary		Adjust sections
//	@Description	Sets the given sections to new balances. Every difference is recorded as a manual transaction.
//	@Tags			Sections
//	@Produce		json
//	@Success		200			{object}	Response[models.Section]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string				true	"ID of the user"
//	@Param			adjustment	body		ledger.Adjustment	true	"New balances"
//	@Router			/v1/users/{userId}/sections [patch]
func (co Controller) AdjustSections(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var adjustment ledger.Adjustment
	if err := httputil.BindData(c, &adjustment); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	section, err := co.ledger.Sections.Adjust(c.Request.Context(), uri.UserID.UUID, adjustment)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Section]{Data: section})
}
