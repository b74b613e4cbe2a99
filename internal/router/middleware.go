package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/global"
)

// RequireQueryParams rejects the request with 400 unless every named query
// parameter is present and non-empty. Values are stored on the context.
func RequireQueryParams(params ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var missing []global.ValidationError
		for _, name := range params {
			value := c.Query(name)
			if value == "" {
				missing = append(missing, global.ValidationError{
					Field: name, Message: name + " query parameter is required", Code: "required",
				})
				continue
			}
			c.Set(name, value)
		}

		if len(missing) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, global.ErrorResponse(missing[0].Message, missing))
			return
		}
		c.Next()
	}
}

// RequestLogger logs one structured line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"clientIP": c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}
