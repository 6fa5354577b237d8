package auth

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// DemoUserID is the identity every unauthenticated or unverifiable
	// request resolves to.
	DemoUserID int64 = 1

	// DemoToken is the sentinel bearer token accepted without validation.
	DemoToken = "demo-token"
)

// contextKey avoids collisions with other packages' context values.
type contextKey string

const userIDKey contextKey = "user_id"

// Resolver maps an Authorization header to a user id. It never rejects a
// request: tokens that fail validation resolve to the demo identity. The
// fallback lives in fallbackUserID so a strict reject-on-invalid policy can
// replace it without touching any call site.
type Resolver struct {
	jwt *JWTManager
}

func NewResolver(jwt *JWTManager) *Resolver {
	return &Resolver{jwt: jwt}
}

// Resolve returns the user id for the given Authorization header value.
func (r *Resolver) Resolve(ctx context.Context, authHeader string) int64 {
	if authHeader == "" {
		return DemoUserID
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == DemoToken {
		return DemoUserID
	}

	claims, err := r.jwt.Validate(token)
	if err != nil {
		return r.fallbackUserID(ctx, err)
	}
	return claims.UserID
}

// fallbackUserID is the single place invalid credentials are turned into an
// identity instead of an error.
func (r *Resolver) fallbackUserID(ctx context.Context, cause error) int64 {
	slog.DebugContext(ctx, "Token validation failed, falling back to demo user",
		"error", cause, "demo_user_id", DemoUserID)
	return DemoUserID
}

// WithUserID stores the resolved user id on the context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the resolved user id from the context, or the demo id when
// none was attached.
func UserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return DemoUserID
}
