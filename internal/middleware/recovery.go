package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery returns a middleware that recovers from panics and logs them.
// API paths get the JSON error body; the HTML view gets plain text.
func Recovery(logger *zap.SugaredLogger, apiPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
					"stack", string(debug.Stack()),
				)

				if wantsJSON(c, apiPrefix) {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"error": gin.H{
							"code":    "INTERNAL_ERROR",
							"message": "internal server error",
						},
					})
					return
				}
				c.Abort()
				c.String(http.StatusInternalServerError, "internal server error")
			}
		}()

		c.Next()
	}
}

func wantsJSON(c *gin.Context, apiPrefix string) bool {
	if apiPrefix != "" && strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
		return true
	}
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
