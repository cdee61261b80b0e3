package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payroll period")
)
