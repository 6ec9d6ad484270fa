package middleware

import (
	"errors"
	"net/http"
	"time"

	"planit/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// AuditWrites logs every state-changing request with the acting user and
// the outcome. Reads are not audited.
func AuditWrites() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			actor := "anonymous"
			if id, ok := common.GetUserIDFromContext(c.Request().Context()); ok {
				actor = id.String()
			}
			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}
			c.Logger().Infoj(log.JSON{
				"event":      "audit",
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"actor":      actor,
				"method":     method,
				"route":      c.Path(),
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
			})
			return err
		}
	}
}

func statusOf(err error) int {
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		return coded.StatusCode()
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
