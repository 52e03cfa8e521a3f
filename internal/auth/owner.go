// Package auth carries the owner identity of a request. Authenticating the
// owner happens in front of this service; the gateway only trusts the header.
package auth

import (
	"context"
	"strings"
)

// HeaderOwnerIdentity is the request header naming the wallet owner.
const HeaderOwnerIdentity = "X-Owner-Identity"

type ownerKey struct{}

// WithOwner returns a context carrying owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFromContext returns the owner of ctx or "" when none is set.
func OwnerFromContext(ctx context.Context) string {
	owner, ok := ctx.Value(ownerKey{}).(string)
	if !ok {
		return ""
	}
	return owner
}

// NormalizeOwner trims whitespace around a raw owner identity.
func NormalizeOwner(raw string) string {
	return strings.TrimSpace(raw)
}
