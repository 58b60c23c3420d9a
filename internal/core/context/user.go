// Package context carries request-scoped identity and tracing values.
package context

import "context"

// UserContext is the authenticated caller, as established by the auth
// middleware from the access token.
type UserContext struct {
	UserID   string
	Username string
	Name     string
	Role     string
}

type userKey struct{}

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the authenticated user, or nil for anonymous
// requests.
func GetUser(ctx context.Context) *UserContext {
	u, _ := ctx.Value(userKey{}).(*UserContext)
	return u
}
