package schedule

import "errors"

var (
	ErrNoSubject    = errors.New("no employee selected")
	ErrNoEntry      = errors.New("no entry exists for this day")
	ErrEditorClosed = errors.New("editor is not open")
	ErrInvalidMonth = errors.New("invalid month, use YYYY-MM")
	ErrInvalidDate  = errors.New("invalid date, use YYYY-MM-DD")
)
