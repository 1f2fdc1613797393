package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the struct `validate` tags and converts the first
// failure into an InvalidInput error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		msg := fmt.Sprintf("field '%s' failed on '%s'", strings.ToLower(fe.Field()), fe.Tag())
		return NewInvalidInput(msg)
	}

	return NewInvalidInput(err.Error())
}
