package Workflow

import "errors"

// Root categories. Every error the engine returns matches one of these with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("concurrent modification")
)

var (
	ErrTaskNotFound   = wrapKind(ErrNotFound, "task not found")
	ErrReportNotFound = wrapKind(ErrNotFound, "report not found")
	ErrStaffNotFound  = wrapKind(ErrNotFound, "staff member not found")
	ErrClientNotFound = wrapKind(ErrNotFound, "client not found")

	ErrEmptyText     = wrapKind(ErrValidation, "text must not be blank")
	ErrInvalidStatus = wrapKind(ErrValidation, "unknown task status")
	ErrInvalidDate   = wrapKind(ErrValidation, "date must be YYYY-MM-DD")
	ErrInvalidTime   = wrapKind(ErrValidation, "time must be HH:MM")
	ErrSameDate      = wrapKind(ErrValidation, "target date must differ from the source date")
	ErrInvalidMood   = wrapKind(ErrValidation, "unknown mood")

	ErrTransitionDenied   = errors.New("status transition not allowed")
	ErrReportFinalized    = errors.New("report is finalized and can no longer be edited")
	ErrReportNotFinalized = errors.New("report has not been finalized")
	ErrAlreadyFinalized   = errors.New("report already finalized")
	ErrNotFlagged         = errors.New("report is not flagged")
)

// kindError ties a specific error to its category so both match with errors.Is.
type kindError struct {
	kind error
	msg  string
}

func wrapKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
