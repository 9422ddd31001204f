package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "fleetdesk/internal/errors"
)

// respondError writes the categorized error as a structured JSON body. No
// stack traces or internal identifiers ever reach the caller.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
