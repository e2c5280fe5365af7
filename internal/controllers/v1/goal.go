package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetGoals)
		r.POST("", co.CreateGoal)
	}
	{
		r.OPTIONS("/:id", co.OptionsGoalDetail)
		r.GET("/:id", co.GetGoal)
		r.PATCH("/:id", co.UpdateGoal)
		r.DELETE("/:id", co.DeleteGoal)
	}
	{
		r.OPTIONS("/:id/contribute", httputil.OptionsPost)
		r.POST("/:id/contribute", co.ContributeToGoal)
		r.OPTIONS("/:id/withdraw", httputil.OptionsPost)
		r.POST("/:id/withdraw", co.WithdrawFromGoal)
	}
}

// OptionsGoalDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the goal"
//	@Router			/v1/users/{userId}/goals/{id} [options]
func (co Controller) OptionsGoalDetail(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if _, err := co.ledger.Goals.Get(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID); err != nil {
		failLedger(c, err)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetGoals returns all goals
//
//	@Summary		Get goals
//	@Description	Returns all saving goals of a user, newest first
//	@Tags			Goals
//	@Produce		json
//	@Success		200		{object}	Response[[]models.SavingGoal]
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId}/goals [get]
func (co Controller) GetGoals(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	goals, err := co.ledger.Goals.List(c.Request.Context(), uri.UserID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]models.SavingGoal]{Data: goals})
}

// CreateGoal creates a saving goal
//
//	@Summary		Create goal
//	@Description	Creates an open saving goal
//	@Tags			Goals
//	@Produce		json
//	@Success		201		{object}	Response[models.SavingGoal]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string				true	"ID of the user"
//	@Param			goal	body		ledger.GoalCreate	true	"Goal"
//	@Router			/v1/users/{userId}/goals [post]
func (co Controller) CreateGoal(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var create ledger.GoalCreate
	if err := httputil.BindData(c, &create); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	goal, err := co.ledger.Goals.Create(c.Request.Context(), uri.UserID.UUID, create)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.SavingGoal]{Data: goal})
}

// GetGoal returns a single goal
//
//	@Summary		Get goal
//	@Description	Returns a specific saving goal
//	@Tags			Goals
//	@Produce		json
//	@Success		200		{object}	Response[models.SavingGoal]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the goal"
//	@Router			/v1/users/{userId}/goals/{id} [get]
func (co Controller) GetGoal(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	goal, err := co.ledger.Goals.Get(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.SavingGoal]{Data: goal})
}

// UpdateGoal updates a goal
//
//	@Summary		Update goal
//	@Description	Updates the descriptive fields and the target of a goal. Only values to be updated need to be specified.
//	@Tags			Goals
//	@Produce		json
//	@Success		200		{object}	Response[models.SavingGoal]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string				true	"ID of the user"
//	@Param			id		path		string				true	"ID of the goal"
//	@Param			goal	body		ledger.GoalUpdate	true	"Goal"
//	@Router			/v1/users/{userId}/goals/{id} [patch]
func (co Controller) UpdateGoal(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var update ledger.GoalUpdate
	if err := httputil.BindData(c, &update); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	goal, err := co.ledger.Goals.Update(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID, update)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.SavingGoal]{Data: goal})
}

// DeleteGoal cancels a goal
//
//	@Summary		Delete goal
//	@Description	Deletes a goal. The saved amount of an open goal is returned to savings.
//	@Tags			Goals
//	@Produce		json
//	@Success		200		{object}	Response[ledger.Cancellation]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Param			id		path		string	true	"ID of the goal"
//	@Router			/v1/users/{userId}/goals/{id} [delete]
func (co Controller) DeleteGoal(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	cancellation, err := co.ledger.Goals.Delete(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[ledger.Cancellation]{Data: cancellation})
}

// ContributeToGoal moves savings into a goal
//
//	@Summary		Contribute to goal
//	@Description	Moves an amount from savings into the goal. Reaching the target completes the goal and pays it out.
//	@Tags			Goals
//	@Produce		json
//	@Success		200		{object}	Response[ledger.Contribution]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string			true	"ID of the user"
//	@Param			id		path		string			true	"ID of the goal"
//	@Param			amount	body		AmountEditable	true	"Amount"
//	@Router			/v1/users/{userId}/goals/{id}/contribute [post]
func (co Controller) ContributeToGoal(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var editable AmountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	contribution, err := co.ledger.Goals.Contribute(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID, editable.Amount)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[ledger.Contribution]{Data: contribution})
}

// WithdrawFromGoal moves money from a goal back to savings
//
//	@Summary		Withdraw from goal
//	@Description	Moves an amount from an open goal back to savings
//	@Tags			Goals
//	@Produce		json
//	@Success		200		{object}	Response[models.SavingGoal]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string			true	"ID of the user"
//	@Param			id		path		string			true	"ID of the goal"
//	@Param			amount	body		AmountEditable	true	"Amount"
//	@Router			/v1/users/{userId}/goals/{id}/withdraw [post]
func (co Controller) WithdrawFromGoal(c *gin.Context) {
	var uri URIUserResource
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var editable AmountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	goal, err := co.ledger.Goals.TransferToSavings(c.Request.Context(), uri.UserID.UUID, uri.ID.UUID, editable.Amount)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.SavingGoal]{Data: goal})
}
