package middleware

import (
	"crypto/hmac"
	"net/http"
)

const APIKeyHeader = "X-API-Key"

// RequireAPIKey guards routes with a static API key. An empty expected key
// disables the check so local development works without secrets.
func RequireAPIKey(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get(APIKeyHeader)
			if got == "" {
				http.Error(w, "API key required. Provide X-API-Key header.", http.StatusUnauthorized)
				return
			}
			if !hmac.Equal([]byte(got), []byte(expected)) {
				http.Error(w, "invalid API key", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
