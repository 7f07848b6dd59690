package auth

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Principal is the caller identity resolved from the access token.
type Principal struct {
	EmployeeID string
	Role       user.Role
	Department string
}

// Can reports whether the principal's role grants permission.
func (p Principal) Can(permission user.Permission) bool {
	return user.HasPermission(p.Role, permission)
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.EmployeeID == "" {
		return Principal{}, ErrMissingPrincipal
	}
	return p, nil
}
