package staff

import "errors"

var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrInvalidSalaryType = errors.New("invalid salary type")
)
