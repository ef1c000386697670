package auth

import (
	"context"
	"net/http"
)

type contextKey struct{}

// identityKey stores the validated Identity in the request context.
var identityKey = contextKey{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext retrieves the identity placed by the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Middleware validates the Authorization header and injects the identity into
// the request context. Requests without a valid identity are rejected before
// any handler runs.
func Middleware(validator TokenValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			id, err := validator.Validate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		}
		return http.HandlerFunc(fn)
	}
}
