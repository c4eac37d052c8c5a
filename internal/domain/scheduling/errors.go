package scheduling

import (
	"errors"
	"fmt"
)

// Kind tags a booking rejection so callers can render an actionable
// message instead of a generic failure.
type Kind string

const (
	KindInvalidDuration         Kind = "INVALID_DURATION"
	KindOutsideWorkingHours     Kind = "OUTSIDE_WORKING_HOURS"
	KindTherapistConflict       Kind = "THERAPIST_CONFLICT"
	KindRoomConflict            Kind = "ROOM_CONFLICT"
	KindPastDateTime            Kind = "PAST_DATETIME"
	KindIllegalStatusTransition Kind = "ILLEGAL_STATUS_TRANSITION"
	KindNotFound                Kind = "NOT_FOUND"
)

// Error is a recoverable domain rejection. Infrastructure failures are
// plain wrapped errors and never carry a Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the rejection kind from err, if it is a domain error.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
