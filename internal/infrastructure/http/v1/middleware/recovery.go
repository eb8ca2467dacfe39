// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"basekit/internal/core/apperror"
	appctx "basekit/internal/core/context"
	"basekit/pkg/logger"
)

// Recovery converts panics into a 500 response. The stack trace goes to
// the log, enriched with the request's trace and actor fields; the client
// only ever sees the generic internal error.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()
				log.WithContext(ctx).Errorw("panic recovered",
					"error", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				_ = c.Error(
					apperror.NewInternal(fmt.Errorf("panic: %v", r)).
						WithDetail("request_id", appctx.GetRequestID(ctx)),
				)
				c.Abort()
			}
		}()
		c.Next()
	}
}
