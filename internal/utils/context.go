// Package utils provides general-purpose helpers used across the
// application: context keys, content hashing and request signing, HTTP
// response writing, the resty client wrapper, JWT handling, trace ids and
// the JSON codec used by the gRPC transport.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so values stored by this
// package cannot collide with string keys of other packages.
type contextKey string

// String implements [fmt.Stringer].
func (c contextKey) String() string {
	return string(c)
}

// OwnerCtxKey is the context key under which the authenticated owner (the
// JWT subject) is stored by the server middleware and interceptors.
var OwnerCtxKey = contextKey("owner")

// WithOwner returns a copy of ctx carrying owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, OwnerCtxKey, owner)
}

// GetOwnerFromContext retrieves the authenticated owner from ctx. ok is false
// when no owner is stored or the stored owner is empty.
func GetOwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerCtxKey).(string)
	return owner, ok && owner != ""
}
