package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func allow(c *gin.Context, methods string) {
	c.Header("allow", methods)
	c.Status(http.StatusNoContent)
}

func OptionsGet(c *gin.Context) {
	allow(c, "OPTIONS, GET")
}

func OptionsPost(c *gin.Context) {
	allow(c, "OPTIONS, POST")
}

func OptionsGetPost(c *gin.Context) {
	allow(c, "OPTIONS, GET, POST")
}

func OptionsGetPatch(c *gin.Context) {
	allow(c, "OPTIONS, GET, PATCH")
}

func OptionsGetPatchDelete(c *gin.Context) {
	allow(c, "OPTIONS, GET, PATCH, DELETE")
}
