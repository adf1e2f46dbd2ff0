package http

import (
	"context"
	"time"

	"ratemynus-portal/pkg/common"
	"ratemynus-portal/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID tags every request with a correlation id, reusing the caller's
// X-Request-ID when present, and logs the finished request.
func RequestID(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(common.HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(common.HeaderRequestID, id)

			ctx := context.WithValue(req.Context(), common.ContextKeyRequestID, id)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.DebugContext(ctx, "HTTP request",
				logger.StringField("method", req.Method),
				logger.StringField("path", req.URL.Path),
				logger.IntField("status", c.Response().Status),
				logger.Field("latency", time.Since(start)))
			return nil
		}
	}
}
