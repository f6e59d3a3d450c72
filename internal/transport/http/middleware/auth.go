package middleware

import (
	"context"
	"net/http"
	"strings"

	"gatelog/internal/domain/auth"
)

type ctxKey string

const ctxKeyMember ctxKey = "member"

// MemberContext is the signed-in member attached to the request.
type MemberContext struct {
	MemberID string
	Name     string
	Level    int
}

// Auth attaches the member claims when a valid bearer token is present;
// requests without one pass through anonymous and are rejected by the
// per-route guards.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyMember, MemberContext{
				MemberID: claims.MemberID,
				Name:     claims.Name,
				Level:    claims.Level,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetMember(ctx context.Context) (MemberContext, bool) {
	member, ok := ctx.Value(ctxKeyMember).(MemberContext)
	return member, ok
}
