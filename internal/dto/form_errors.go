package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// NonFieldKey collects errors that belong to the whole submission rather
// than a single field, e.g. a failed login or a storage-level year bound.
const NonFieldKey = "non_field_errors"

// FieldErrors maps a form field to its validation messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) AddNonField(message string) {
	e.Add(NonFieldKey, message)
}

func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// FieldErrorsFromBinding translates a gin binding error into field-scoped
// messages. Field names come from the json tags (registered on the binding
// validator in the router setup). Anything that is not a validation error,
// like a malformed body, becomes a non-field error.
func FieldErrorsFromBinding(err error) FieldErrors {
	out := FieldErrors{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out.Add(fe.Field(), bindingMessage(fe))
		}
		return out
	}

	out.AddNonField("invalid request payload")
	return out
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value is at least %s", fe.Param())
	case "email":
		return "enter a valid email address"
	case "uuid":
		return "enter a valid identifier"
	case "datetime":
		return fmt.Sprintf("enter a valid date in %s format", fe.Param())
	default:
		return "invalid value"
	}
}
