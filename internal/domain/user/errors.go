package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrStaffClaimMissing       = errors.New("token carries no staff profile")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
