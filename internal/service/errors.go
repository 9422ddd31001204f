package service

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fleetdesk/internal/errors"
)

// translateStorageError maps repository failures into the application
// taxonomy. Missing records become NotFound with the given message;
// everything else (timeouts, connectivity, driver faults) is a retryable
// transient failure, never silently folded into NotFound.
func translateStorageError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	return apperrors.Transient(err)
}
