package timesheet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRange     = errors.New("start date is after end date")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownLeaveType = errors.New("unknown leave type")
	ErrUserNotFound     = errors.New("user not found")
)

// OverlapError rejects a candidate interval that intersects one that
// was already accepted. The existing interval is carried so the caller
// can show the user which period conflicts.
type OverlapError struct {
	Candidate LeaveInterval
	Existing  LeaveInterval
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("leave %s overlaps accepted leave %s", e.Candidate, e.Existing)
}

// IncompleteProfileError aborts a render before any output is produced.
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	return "profile is missing required fields: " + strings.Join(e.Missing, ", ")
}
