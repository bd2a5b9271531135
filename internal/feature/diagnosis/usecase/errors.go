package usecase

import "errors"

var (
	// ErrConditionNameRequired is returned when the consult request has no name.
	ErrConditionNameRequired = errors.New("condition name is required")
	// ErrConditionNameTooLong is returned when the name exceeds MaxConditionNameLength.
	ErrConditionNameTooLong = errors.New("condition name is too long")
	// ErrConditionNameInvalid is returned when the name contains disallowed characters.
	ErrConditionNameInvalid = errors.New("condition name contains invalid characters")
)

// IsValidationError reports whether err is one of the consult input errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrConditionNameRequired) ||
		errors.Is(err, ErrConditionNameTooLong) ||
		errors.Is(err, ErrConditionNameInvalid)
}
