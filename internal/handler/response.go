package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"blogapi/internal/errors"
	"blogapi/internal/logger"
)

// MessageResponse is returned by endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps err to its HTTP status. Unexpected errors are logged and
// answered with a generic message.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.FromContext(log, c).Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindAndValidate decodes the body into req and runs its validate tags.
// Either failure is reported as 400 with message.
func bindAndValidate(c echo.Context, req interface{}, message string) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: message,
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

// PostIDParam parses the :id path parameter. A blank id is a validation
// error, and an id that is not a uuid names no post.
func PostIDParam(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	if raw == "" {
		return uuid.Nil, errors.Invalid("Post ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrPostNotFound
	}
	return id, nil
}
