package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sentinelai/sentinel/internal/auth"
	"github.com/sentinelai/sentinel/internal/model"
)

// RequireAuth returns a middleware that authenticates requests via a
// bearer token in the Authorization header. On success the decoded
// account identity is placed on the request context; on failure the
// request is rejected with 401 before reaching the handler.
func RequireAuth(signer *auth.TokenSigner, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				logger.LogAttrs(r.Context(), slog.LevelWarn, "rejected bearer token",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				unauthorized(w, "invalid or expired token")
				return
			}

			authCtx := &model.AuthContext{
				AccountID: claims.AccountID,
				Email:     claims.Email,
				Plan:      claims.Plan,
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"` + message + `"}}`))
}
