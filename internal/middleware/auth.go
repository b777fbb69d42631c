package middleware

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/config"
	"cases_backend/pkg/resp"
	"cases_backend/pkg/token"
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID returns a context carrying the authenticated owner id.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext extracts the authenticated owner id.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Auth verifies the Bearer access token and puts the owner id into the
// request context. Requests without a valid token get 401.
func Auth(jwtCfg config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				resp.WriteErrorResponse(w, http.StatusUnauthorized, "missing bearer token", apperr.Code(apperr.ErrAuth))
				return
			}

			claims, err := token.VerifyToken(strings.TrimPrefix(header, "Bearer "), jwtCfg.AccessTokenSecretKey())
			if err != nil {
				resp.WriteErrorResponse(w, http.StatusUnauthorized, "invalid token", apperr.Code(apperr.ErrAuth))
				return
			}

			ownerID, err := token.OwnerID(claims)
			if err != nil {
				resp.WriteErrorResponse(w, http.StatusUnauthorized, "invalid token", apperr.Code(apperr.ErrAuth))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), ownerID)))
		})
	}
}
