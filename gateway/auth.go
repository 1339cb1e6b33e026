package gateway

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Authorized reports whether r carries token as a bearer credential or as
// the "token" query parameter. An empty token allows every request.
func Authorized(token string, r *http.Request) bool {
	if token == "" {
		return true
	}
	return headerAuthorized(token, r.Header) || matches(token, r.URL.Query().Get("token"))
}

func headerAuthorized(token string, h http.Header) bool {
	bearer, ok := strings.CutPrefix(h.Get("Authorization"), "Bearer ")
	return ok && matches(token, bearer)
}

func matches(token, candidate string) bool {
	return candidate != "" && subtle.ConstantTimeCompare([]byte(token), []byte(candidate)) == 1
}

// RequireToken rejects unauthorized requests with 401 before next runs.
func RequireToken(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Authorized(token, r) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
