package http

import (
	"errors"
	"log/slog"
	"net/http"

	"lavka/internal/core/domain/services"
	"lavka/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// emptyBody is what every error response carries.
type emptyBody struct{}

// NewHTTPErrorHandler maps handler errors to status codes:
//   - *echo.HTTPError keeps its code
//   - errs.ErrObjectNotFound is 404
//   - domain validation errors and rejected completions are 400
//   - anything else is 500
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		ctx := c.Request().Context()
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		} else {
			logger.DebugContext(ctx, "request rejected",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, emptyBody{})
		}
		if writeErr != nil {
			logger.ErrorContext(ctx, "failed to write error response", "error", writeErr)
		}
	}
}

func statusOf(err error) int {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	var rejected *services.CompletionRejectedError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.As(err, &rejected),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
