package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// IncomeTotal is the undistributed income of a user.
type IncomeTotal struct {
	Total decimal.Decimal `json:"total" example:"2500"` // Income not distributed yet
}

// IncomeTransferEditable moves income directly into one section.
type IncomeTransferEditable struct {
	Amount      decimal.Decimal    `json:"amount" example:"200" minimum:"0.00000001"` // The amount to transfer
	Section     models.SectionName `json:"section" example:"expenses"`                // The section receiving the amount
	Description string             `json:"description" example:"Rent"`                // A description. Defaults to "Transfer from income to <section>"
}

func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetIncome)
		r.POST("", co.CreateIncome)
	}
	{
		r.OPTIONS("/total", httputil.OptionsGet)
		r.GET("/total", co.GetIncomeTotal)
		r.OPTIONS("/transfer", httputil.OptionsPost)
		r.POST("/transfer", co.TransferIncome)
	}
}

// GetIncome returns the income history
//
//	@Summary		Get income
//	@Description	Returns the received income of a user, newest first
//	@Tags			Income
//	@Produce		json
//	@Success		200		{object}	ledger.Page[models.Income]
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			page	query		int		false	"Page to return, starting at 1"
//	@Param			limit	query		int		false	"Records per page, 10 by default, at most 100"
//	@Router			/v1/users/{userId}/income [get]
func (co Controller) GetIncome(c *gin.Context) {
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

	page, err := co.ledger.Income.List(c.Request.Context(), uri.UserID.UUID, opts)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateIncome records received income
//
//	@Summary		Create income
//	@Description	Records received income and adds it to the income pool. An investment return closes the referenced investment.
//	@Tags			Income
//	@Produce		json
//	@Success		201		{object}	Response[models.Income]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string				true	"ID of the user"
//	@Param			income	body		ledger.IncomeCreate	true	"Income"
//	@Router			/v1/users/{userId}/income [post]
func (co Controller) CreateIncome(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var create ledger.IncomeCreate
	if err := httputil.BindData(c, &create); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	income, err := co.ledger.Income.Add(c.Request.Context(), uri.UserID.UUID, create)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.Income]{Data: income})
}

// GetIncomeTotal returns the undistributed income
//
//	@Summary		Get income total
//	@Description	Returns the income that has not been distributed yet
//	@Tags			Income
//	@Produce		json
//	@Success		200		{object}	Response[IncomeTotal]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId}/income/total [get]
func (co Controller) GetIncomeTotal(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	total, err := co.ledger.Income.Total(c.Request.Context(), uri.UserID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[IncomeTotal]{Data: IncomeTotal{Total: total}})
}

// TransferIncome moves income into one section
//
//	@Summary		Transfer income
//	@Description	Moves an amount of the undistributed income directly into one section
//	@Tags			Income
//	@Produce		json
//	@Success		201			{object}	Response[models.Transaction]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string					true	"ID of the user"
//	@Param			transfer	body		IncomeTransferEditable	true	"Transfer"
//	@Router			/v1/users/{userId}/income/transfer [post]
func (co Controller) TransferIncome(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var transfer IncomeTransferEditable
	if err := httputil.BindData(c, &transfer); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	transaction, err := co.ledger.Income.TransferToSection(c.Request.Context(), uri.UserID.UUID, transfer.Amount, transfer.Section, transfer.Description)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.Transaction]{Data: transaction})
}
