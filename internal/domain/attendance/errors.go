package attendance

import "errors"

// Attendance domain errors
var (
	// Punch clock errors
	ErrAlreadyPunchedIn  = errors.New("already punched in today")
	ErrAlreadyPunchedOut = errors.New("already punched out today")
	ErrNotPunchedInYet   = errors.New("not punched in yet today")

	// General errors
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrInvalidMonth     = errors.New("month must be in YYYY-MM format")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimestamp = errors.New("invalid punch timestamp")
)
