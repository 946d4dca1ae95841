package services

import "errors"

var (
	// ErrProposalNotFound means the referenced proposal does not exist or
	// is not visible to the caller.
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrUserNotFound means the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidStatus means the requested status is not one of the four
	// review statuses.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrRemarksRequired means a status update arrived without rationale.
	ErrRemarksRequired = errors.New("remarks are required for a status update")

	// ErrContentEditNotAllowed means a content edit was attempted on a
	// proposal that is not currently accepted.
	ErrContentEditNotAllowed = errors.New("content can only be edited on an accepted proposal")
)

// ValidationError reports a missing or malformed field in a submission or
// filter. It maps to a 400 at the boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func missingField(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}
