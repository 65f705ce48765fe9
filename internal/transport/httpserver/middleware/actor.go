package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ActorHeader carries the acting professional's id. Authentication itself
// lives in front of this service; the header is trusted as-is.
const ActorHeader = "X-Actor-ID"

type contextKey int

const actorIDKey contextKey = iota

// RequireActor rejects requests without an actor id and stores it in the
// request context for the handlers.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := strings.TrimSpace(r.Header.Get(ActorHeader))
		if actorID == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"missing_actor","message":"` + ActorHeader + ` header is required"}}`))
			return
		}

		ctx := context.WithValue(r.Context(), actorIDKey, actorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the actor id stored by RequireActor.
func ActorFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorIDKey).(string)
	return actorID, ok && actorID != ""
}
