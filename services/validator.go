package services

import (
	"fmt"
	"ticket-chat/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateCommand rejects malformed input before any store is touched.
func validateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	return nil
}
