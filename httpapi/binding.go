package httpapi

import (
	"fmt"
	"net/http"

	validatorV10 "github.com/go-playground/validator/v10"

	"github.com/dxpr/content-intel/json"
)

var validate = validatorV10.New()

// DecodeJSON binds a request body into v, applying struct defaults, then
// validates it. Returns field errors for the responder; nil details with a
// non-nil error means the body itself was unreadable.
func DecodeJSON(r *http.Request, v any) ([]FieldError, error) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return nil, err
	}
	return Validate(v)
}

// Validate runs struct validation, translating failures to field errors.
func Validate(v any) ([]FieldError, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	validationErrs, ok := err.(validatorV10.ValidationErrors)
	if !ok {
		return nil, err
	}

	fields := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return fields, err
}

func validationMessage(fe validatorV10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s items", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s items", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}
