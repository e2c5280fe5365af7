package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsPost)
		r.POST("", co.CreateUser)
	}
	{
		r.OPTIONS("/:userId", co.OptionsUserDetail)
		r.GET("/:userId", co.GetUser)
		r.PATCH("/:userId", co.UpdateUser)
		r.DELETE("/:userId", co.DeleteUser)
	}
}

// OptionsUserDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Success		204
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId} [options]
func (co Controller) OptionsUserDetail(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if _, err := co.ledger.Accounts.Get(c.Request.Context(), uri.UserID.UUID); err != nil {
		failLedger(c, err)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateUser opens a new account
//
//	@Summary		Create user
//	@Description	Creates a user with empty sections and an empty income pool
//	@Tags			Users
//	@Produce		json
//	@Success		201		{object}	Response[models.User]
//	@Failure		400		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			user	body		ledger.UserCreate	true	"User"
//	@Router			/v1/users [post]
func (co Controller) CreateUser(c *gin.Context) {
	var create ledger.UserCreate
	if err := httputil.BindData(c, &create); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	user, err := co.ledger.Accounts.Open(c.Request.Context(), create)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[models.User]{Data: user})
}

// GetUser returns a user
//
//	@Summary		Get user
//	@Description	Returns the profile and allocation preferences of a user
//	@Tags			Users
//	@Produce		json
//	@Success		200		{object}	Response[models.User]
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId} [get]
func (co Controller) GetUser(c *gin.Context) {
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

	c.JSON(http.StatusOK, Response[models.User]{Data: user})
}

// UpdateUser changes the allocation preferences
//
//	@Summary		Update user
//	@Description	Updates the name and the allocation preferences of a user. Only values to be updated need to be specified.
//	@Tags			Users
//	@Produce		json
//	@Success		200			{object}	Response[models.User]
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		path		string				true	"ID of the user"
//	@Param			preferences	body		ledger.Preferences	true	"Preferences"
//	@Router			/v1/users/{userId} [patch]
func (co Controller) UpdateUser(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var prefs ledger.Preferences
	if err := httputil.BindData(c, &prefs); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	user, err := co.ledger.Accounts.UpdatePreferences(c.Request.Context(), uri.UserID.UUID, prefs)
	if err != nil {
		failLedger(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.User]{Data: user})
}

// DeleteUser closes an account
//
//	@Summary		Delete user
//	@Description	Deletes a user and all of their data
//	@Tags			Users
//	@Success		204
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			userId	path		string	true	"ID of the user"
//	@Router			/v1/users/{userId} [delete]
func (co Controller) DeleteUser(c *gin.Context) {
	var uri URIUser
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if err := co.ledger.Accounts.Close(c.Request.Context(), uri.UserID.UUID); err != nil {
		failLedger(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
