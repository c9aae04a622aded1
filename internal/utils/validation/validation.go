package validation

import (
	"fmt"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct validates a DTO against its `validate` tags and maps failures onto
// the shared validation error so callers can errors.Is against it.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}
