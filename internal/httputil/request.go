package httputil

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data.
//
// It does not write a response, the caller decides on the status.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return ErrRequestBodyEmpty
	}

	log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	return fmt.Errorf("%w: %s", ErrInvalidBody, err.Error())
}

