package user

import "errors"

var (
	ErrAdminAccessRequired     = errors.New("administrative access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
