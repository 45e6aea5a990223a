package scheduling

import (
	"fmt"

	"agendly/models"
)

// ValidationError rejects malformed input before any storage access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError carries every appointment that overlaps the candidate.
// Nothing has been created or mutated when this is returned.
type ConflictError struct {
	Conflicts []models.ConflictRecord
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflicts with %d existing appointment(s)", len(e.Conflicts))
}

// InvalidTransitionError reports a rejected state machine transition.
// The appointment is left unchanged.
type InvalidTransitionError struct {
	Axis   string // "status" or "payment"
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s transition %s -> %s: %s", e.Axis, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid %s transition %s -> %s", e.Axis, e.From, e.To)
}

// NotFoundError reports a missing appointment, service or professional.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InfrastructureError wraps storage and timeout failures. The core does not
// retry these; retrying a conflicting write could create duplicate bookings.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}
