package healthz

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/sectionledger/backend/internal/ledger"
)

func RegisterRoutes(r *gin.RouterGroup, service *ledger.Service) {
	r.OPTIONS("", Options)
	r.GET("", Get(service))
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the health of the backend
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Produce		json
//	@Success		204
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/healthz [get]
func Get(service *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Ping(c.Request.Context()); err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("healthz")
			c.JSON(http.StatusInternalServerError, httputil.HTTPError{
				Error: "There is a problem with the database connection",
			})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
