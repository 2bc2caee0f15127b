package middleware

import "context"

type contextKey string

const sessionContextKey contextKey = "session"

// Session is the validated claim set of a session credential.
type Session struct {
	FirstName string
	LastName  string
}

// WithSession injects the validated session into the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext returns the session from the context, or nil.
func SessionFromContext(ctx context.Context) *Session {
	v := ctx.Value(sessionContextKey)
	if v == nil {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
