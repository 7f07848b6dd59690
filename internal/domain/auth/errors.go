package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMissingPrincipal = errors.New("request is not authenticated")
	ErrInvalidPrincipal = errors.New("token does not identify an employee")
)
