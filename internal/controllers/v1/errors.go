package v1

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"insufficient funds in savings: 100 available, 150 requested"`
}

// status returns the appropriate HTTP status for an error of the ledger.
//
// Insufficient funds also match ErrInvalidState and must be checked first.
func status(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrInvalidState), errors.Is(err, models.ErrEmailNotUnique):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrValidation):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// fail writes the error response for err.
func fail(c *gin.Context, code int, err error) {
	if code >= http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	c.JSON(code, httpError{Error: err.Error()})
}

// failLedger writes the error response for an error returned by the ledger.
func failLedger(c *gin.Context, err error) {
	fail(c, status(err), err)
}
