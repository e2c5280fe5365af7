package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// GetExpenses returns a page of expenses
//
//	@Summary		Get expenses
//	@Description	Returns the expenses of a user, latest date first
//	@Tags			Expenses
//	@Produce		json
//	@Success		200		{object}	ledger.Page[models.Expense]
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			page	query		int		false	"Page to return, starting at 1"
//	@Param			limit	query		int		false	"Expenses per page, 10 by default, at most 100"
//	@Router			/v1/users/{userId}/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
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

	page, err := co.ledger.Expenses.List(c.Request.Context(), uri.UserID.UUID, opts)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateExpense creates an expense
//
//	@Summary		Create expense
//	@Description	Creates an expense and pays for it from the expenses section
//	@Tags			Expenses
//	@Produce		json
//	@Success		201			{object}	Response[models.Expense]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string					true	"ID of the user"
//	@Param			expense		body		ledger.ExpenseCreate	true	"Expense"
//	@Router			/v1/users/{userId}/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var create ledger.ExpenseCreate
	if err := httputil.BindData(c, &create); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	expense, err := co.ledger.Expenses.Create(c.Request.Context(), uri.UserID.UUID, create)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.Expense]{Data: expense})
}

// GetExpense returns a single expense
//
//	@Summary		Get expense
//	@Description	Returns a specific expense
//	@Tags			Expenses
//	@Produce		json
//	@Success		200		{object}	Response[models.Expense]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the expense"
//	@Router			/v1/users/{userId}/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	expense, err := co.ledger.Expenses.Get(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Expense]{Data: expense})
}

// UpdateExpense updates an expense
//
//	@Summary		Update expense
//	@Description	Updates an expense. A changed amount is settled against the expenses section. Only values to be updated need to be specified.
//	@Tags			Expenses
//	@Produce		json
//	@Success		200			{object}	Response[models.Expense]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string					true	"ID of the user"
//	@Param			id			path		string					true	"ID of the expense"
//	@Param			expense		body		ledger.ExpenseUpdate	true	"Expense"
//	@Router			/v1/users/{userId}/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var update ledger.ExpenseUpdate
	if err := httputil.BindData(c, &update); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	expense, err := co.ledger.Expenses.Update(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID, update)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Expense]{Data: expense})
}

// DeleteExpense deletes an expense
//
//	@Summary		Delete expense
//	@Description	Deletes an expense and refunds its amount to the expenses section.
//	@Tags			Expenses
//	@Success		204
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the expense"
//	@Router			/v1/users/{userId}/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if err := co.ledger.Expenses.Delete(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID); err != nil {
		failLedger(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
