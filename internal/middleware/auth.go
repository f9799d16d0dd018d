// Package middleware holds the HTTP middlewares that are not already
// provided by chi: the bearer-token identity context, structured request
// logging, and CORS.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// actorKey is the context key under which the authenticated actor is stored.
const actorKey contextKey = "actor"

// Claims are the token claims the platform's auth provider issues. Token
// issuance happens elsewhere; this service only verifies and consumes them.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	OrgID string `json:"org"`
	jwt.RegisteredClaims
}

// Auth returns a middleware that verifies the bearer token and places the
// resulting actor identity in the request context. Requests without a valid
// token are rejected with 401.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "invalid authorization header format")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid token")
				return
			}

			role := model.Role(claims.Role)
			if !role.Valid() {
				unauthorized(w, "unknown role")
				return
			}

			actor := model.Actor{
				ID:    claims.Subject,
				Name:  claims.Name,
				Email: model.NormalizeEmail(claims.Email),
				Role:  role,
				OrgID: model.NewOrgID(claims.OrgID),
			}
			if actor.ID == "" {
				unauthorized(w, "token missing subject")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActor extracts the authenticated actor from the request context.
func GetActor(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(model.Actor)
	return actor, ok
}

// WithActor returns a context carrying the given actor. Used by tests and
// internal tooling that bypass the HTTP layer.
func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}
