package submit

import "context"

type contextKey string

const attemptKey contextKey = "submit_attempt"

// AttemptInfo identifies a submission attempt for journaling.
type AttemptInfo struct {
	SessionID string
	Token     uint64
}

// WithAttempt attaches attempt identity to the context.
func WithAttempt(ctx context.Context, info AttemptInfo) context.Context {
	return context.WithValue(ctx, attemptKey, info)
}

// AttemptFrom extracts the attempt identity from the context.
func AttemptFrom(ctx context.Context) AttemptInfo {
	if v, ok := ctx.Value(attemptKey).(AttemptInfo); ok {
		return v
	}
	return AttemptInfo{}
}
