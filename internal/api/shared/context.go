package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// ContextKey namespaces values this package stores in a request context.
type ContextKey string

const (
	PrincipalContextKey ContextKey = "principal"
	TokenContextKey     ContextKey = "token"
	TraceIDKey          ContextKey = "traceID"
)

// SetTraceID returns a child context carrying a fresh 32-hex-character trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the request's trace ID, or "" outside the trace middleware.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithPrincipal stores the authenticated principal and the token it was
// resolved from.
func WithPrincipal(ctx context.Context, principal domain.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, PrincipalContextKey, principal)
	return context.WithValue(ctx, TokenContextKey, token)
}

// GetPrincipal returns the principal set by the authentication middleware.
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(PrincipalContextKey).(domain.Principal)
	return principal, ok
}

// GetToken returns the bearer token of the current request, or "".
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(TokenContextKey).(string)
	return token
}

func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
