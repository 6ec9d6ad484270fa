package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"planit/internal/common"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Details []common.FieldError `json:"details,omitempty"`
}

// ErrorHandler renders service errors and framework errors in one envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: "Internal Server Error"}

	var appErr *common.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.StatusCode()
		if status < http.StatusInternalServerError {
			resp.Error = appErr.Message
			resp.Details = appErr.Details
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		resp.Error = fmt.Sprint(httpErr.Message)
		if status >= http.StatusInternalServerError {
			resp.Error = http.StatusText(status)
		}
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("request %s %s %s failed: %v", requestID, c.Request().Method, c.Request().URL.Path, err)
	} else {
		c.Logger().Debugf("request %s %s %s rejected: %v", requestID, c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

func badRequest(message string) error {
	return common.NewBadRequest(message)
}
