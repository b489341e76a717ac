package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"soundbridge/internal/pkg/response"
)

// RequestLogger logs every request and recovers from handler panics with a
// scrubbed 500 body.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error().
					Interface("panic", recovered).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Msg("handler panic")
				response.Error(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
				return
			}

			ev := log.Info()
			if c.Writer.Status() >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int64("user_id", c.GetInt64(CtxUserID)).
				Dur("latency", time.Since(start)).
				Str("client_ip", c.ClientIP()).
				Msg("request")
		}()

		c.Next()
	}
}
