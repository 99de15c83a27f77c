// Package ctxutil carries the acting user through request contexts. It has
// no internal dependencies so any layer can import it without cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user's identifier.
type ActorKey struct{}

// WithActorID returns a context with the acting user embedded. The CLI sets
// this once per invocation from the resolved operator.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the acting user from context, or empty string if
// none was set. Services fall back to the configured current_user setting.
func ActorFromContext(ctx context.Context) string {
	if v := ctx.Value(ActorKey{}); v != nil {
		return v.(string)
	}
	return ""
}
