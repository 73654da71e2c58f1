package services

import (
	"errors"
	"fmt"

	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"
)

// ErrValidation is the common parent of request validation failures.
var ErrValidation = errors.New("validation error")

// validateRequest runs the struct tags of req and wraps a failure in ErrValidation.
func validateRequest(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// translateNotFound maps repositories.ErrNotFound onto a service sentinel and wraps everything else.
func translateNotFound(err error, notFound error, action string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", action, err)
}
