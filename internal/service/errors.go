package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrWorkoutNotFound        = errors.New("workout not found")
	ErrScheduledDateNotFound  = errors.New("scheduled date not found")
	ErrRecurringAlertNotFound = errors.New("recurring alert not found")
	ErrExercisePlanNotFound   = errors.New("exercise plan not found")
	ErrCommentNotFound        = errors.New("comment not found")
	ErrExerciseNotFound       = errors.New("exercise not found")
	ErrCategoryNotFound       = errors.New("exercise category not found")

	// Returned by the list operations of a sub-collection the workout's mode does not own.
	ErrWorkoutNotScheduled = errors.New("The workout is not scheduled.")
	ErrWorkoutNotRecurrent = errors.New("The workout is not recurrent.")
)

// ValidationError reports a rejected input field. errors.Is(err, ErrValidationFailed) holds.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

const (
	msgRequired = "This field is required."
	msgInPast   = "The date and time cannot be in the past."
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs the `validate` tags of s and converts the first failure
// into a *ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), msgRequired)
	case "max":
		return invalid(fe.Field(), fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param()))
	case "min":
		return invalid(fe.Field(), fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param()))
	default:
		return invalid(fe.Field(), fmt.Sprintf("Failed on the %q rule.", fe.Tag()))
	}
}
