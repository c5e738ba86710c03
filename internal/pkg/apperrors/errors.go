package apperrors

import "errors"

// Common errors
var (
	// Caller input errors. Always raised before any storage access.
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrValidationFailed = errors.New("validation failed")

	// Resource errors
	ErrCourseNotFound = errors.New("course not found")

	// Catalog source errors. Distinguishes "the source had nothing for
	// this year" from a broken system.
	ErrNoCourseData = errors.New("no course data for the requested year")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewInvalidArgumentError creates an invalid-argument error with a message
func NewInvalidArgumentError(message string) error {
	return &CustomError{
		Err:     ErrInvalidArgument,
		Message: message,
	}
}

// NewNotFoundError creates a course-not-found error carrying the keys
// that could not be resolved.
func NewNotFoundError(message string, missing []string) error {
	return &CustomError{
		Err:     ErrCourseNotFound,
		Message: message,
		Details: map[string]interface{}{"missing": missing},
	}
}

// Details extracts the structured detail map from an error, if any.
func Details(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
