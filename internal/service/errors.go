package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "whiterabbit/internal/errors"
)

// notFound translates a missing row into a NotFoundError of kind; any other
// error is wrapped unchanged.
func notFound(err error, kind error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound(kind, message)
	}
	return fmt.Errorf("%s: %w", kind, err)
}
