package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// TransferEditable is a manual transfer into, out of or between sections.
type TransferEditable struct {
	FromSection models.SectionName `json:"fromSection" example:"savings"`                      // Section the money is taken from. Empty for money entering the ledger
	ToSection   models.SectionName `json:"toSection" example:"investments"`                    // Section the money goes to. Empty for money leaving the ledger
	Amount      decimal.Decimal    `json:"amount" example:"120" minimum:"0.00000001"`          // The amount to transfer
	Description string             `json:"description" example:"Moving savings into the fund"` // A description
}

func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatch)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
	}
}

// GetTransactions returns a page of transactions
//
//	@Summary		Get transactions
//	@Description	Returns the transactions of a user, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200		{object}	ledger.TransactionPage
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			page	query		int		false	"Page to return, starting at 1"
//	@Param			limit	query		int		false	"Transactions per page, 10 by default, at most 100"
//	@Param			type	query		string	false	"Only return transactions of this type. 'all' returns every type"
//	@Router			/v1/users/{userId}/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var filter ledger.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	page, err := co.ledger.Transactions.List(c.Request.Context(), uri.UserID.UUID, filter)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateTransaction records a manual transfer
//
//	@Summary		Create transaction
//	@Description	Records a manual transfer into, out of or between sections
//	@Tags			Transactions
//	@Produce		json
//	@Success		201			{object}	Response[models.Transaction]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string				true	"ID of the user"
//	@Param			transfer	body		TransferEditable	true	"Transfer"
//	@Router			/v1/users/{userId}/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var transfer TransferEditable
	if err := httputil.BindData(c, &transfer); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	transaction, err := co.ledger.Transactions.Record(c.Request.Context(), uri.UserID.UUID, ledger.Entry{
		Type:        models.TransactionTypeManual,
		FromSection: transfer.FromSection,
		ToSection:   transfer.ToSection,
		Amount:      transfer.Amount,
		Description: transfer.Description,
	})
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.Transaction]{Data: transaction})
}

// GetTransaction returns a single transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200		{object}	Response[models.Transaction]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the transaction"
//	@Router			/v1/users/{userId}/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	transaction, err := co.ledger.Transactions.Get(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Transaction]{Data: transaction})
}

// UpdateTransaction changes the description of a transaction
//
//	@Summary		Update transaction
//	@Description	Changes the description of a transaction. No other field can be changed.
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	Response[models.Transaction]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string				true	"ID of the user"
//	@Param			id			path		string				true	"ID of the transaction"
//	@Param			transaction	body		DescriptionEditable	true	"Description"
//	@Router			/v1/users/{userId}/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var editable DescriptionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	transaction, err := co.ledger.Transactions.UpdateDescription(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID, editable.Description)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Transaction]{Data: transaction})
}
