package auth

import (
	"context"

	"github.com/nora-sch/s-r-portfolio/authz"
)

// contextKey is a custom type for context keys to avoid collisions with keys
// set by other packages.
type contextKey string

const requesterContextKey contextKey = "auth_requester"

// NewContextWithRequester returns a child context carrying the authenticated
// requester. Set by the JWT middleware after the token and the credential
// freshness check both pass.
func NewContextWithRequester(ctx context.Context, req authz.Requester) context.Context {
	return context.WithValue(ctx, requesterContextKey, req)
}

// RequesterFromContext extracts the authenticated requester from the context.
// The second return value is false on unauthenticated requests.
func RequesterFromContext(ctx context.Context) (authz.Requester, bool) {
	req, ok := ctx.Value(requesterContextKey).(authz.Requester)
	return req, ok
}
