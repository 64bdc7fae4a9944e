package message

import "context"

// Principal is an authenticated identity attached to a request.
type Principal struct {
	Name  string
	Roles []string
}

type principalKey struct{}

// WithPrincipal returns a context carrying p. The identity is scoped to the
// exchange whose context it rides on; there is no process-wide slot.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the identity carried by ctx, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}
