package domain

import "errors"

var (
	// ErrInvariantViolation is returned when a rebuild would emit periods that
	// break a structural invariant; it indicates a logic defect, not bad data
	ErrInvariantViolation = errors.New("period invariant violation")

	// ErrNoEvents is returned when a rebuild is asked to run over an empty log
	ErrNoEvents = errors.New("no transaction events")

	// ErrInvalidSchedule is returned when the liability schedule fails validation
	ErrInvalidSchedule = errors.New("invalid liability schedule")
)
