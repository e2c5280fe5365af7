package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (co Controller) RegisterInvestmentRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetInvestments)
		r.POST("", co.CreateInvestment)
	}
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetInvestment)
		r.PATCH("/:id", co.UpdateInvestment)
		r.DELETE("/:id", co.DeleteInvestment)
	}
}

// GetInvestments returns a page of investments
//
//	@Summary		Get investments
//	@Description	Returns the investments of a user, newest first
//	@Tags			Investments
//	@Produce		json
//	@Success		200		{object}	ledger.Page[models.Investment]
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			page	query		int		false	"Page to return, starting at 1"
//	@Param			limit	query		int		false	"Investments per page, 10 by default, at most 100"
//	@Router			/v1/users/{userId}/investments [get]
func (co Controller) GetInvestments(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var opts ledger.PageOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	page, err := co.ledger.Investments.List(c.Request.Context(), uri.UserID.UUID, opts)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateInvestment creates an investment
//
//	@Summary		Create investment
//	@Description	Creates an investment and pays for it from the investments section
//	@Tags			Investments
//	@Produce		json
//	@Success		201			{object}	Response[models.Investment]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string					true	"ID of the user"
//	@Param			investment	body		ledger.InvestmentCreate	true	"Investment"
//	@Router			/v1/users/{userId}/investments [post]
func (co Controller) CreateInvestment(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var create ledger.InvestmentCreate
	if err := httputil.BindData(c, &create); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	investment, err := co.ledger.Investments.Create(c.Request.Context(), uri.UserID.UUID, create)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.Investment]{Data: investment})
}

// GetInvestment returns a single investment
//
//	@Summary		Get investment
//	@Description	Returns a specific investment
//	@Tags			Investments
//	@Produce		json
//	@Success		200		{object}	Response[models.Investment]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the investment"
//	@Router			/v1/users/{userId}/investments/{id} [get]
func (co Controller) GetInvestment(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	investment, err := co.ledger.Investments.Get(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Investment]{Data: investment})
}

// UpdateInvestment updates an investment
//
//	@Summary		Update investment
//	@Description	Updates the descriptive fields of an investment. The amount cannot be changed.
//	@Tags			Investments
//	@Produce		json
//	@Success		200			{object}	Response[models.Investment]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string					true	"ID of the user"
//	@Param			id			path		string					true	"ID of the investment"
//	@Param			investment	body		ledger.InvestmentUpdate	true	"Investment"
//	@Router			/v1/users/{userId}/investments/{id} [patch]
func (co Controller) UpdateInvestment(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var update ledger.InvestmentUpdate
	if err := httputil.BindData(c, &update); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	investment, err := co.ledger.Investments.Update(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID, update)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Investment]{Data: investment})
}

// DeleteInvestment deletes an investment
//
//	@Summary		Delete investment
//	@Description	Deletes an investment. The amount of an open investment is refunded to the investments section.
//	@Tags			Investments
//	@Success		204
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the investment"
//	@Router			/v1/users/{userId}/investments/{id} [delete]
func (co Controller) DeleteInvestment(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if err := co.ledger.Investments.Delete(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID); err != nil {
		failLedger(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
