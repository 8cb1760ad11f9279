package auth

import (
	"net/http"
	"os"
	"strings"
)

// AdminAuthMiddleware guards the back-office routes with a static bearer
// token read from ADMIN_TOKEN. An unset token closes the admin surface
// entirely.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminToken := os.Getenv("ADMIN_TOKEN")
		token := r.Header.Get("Authorization")
		if adminToken == "" || !strings.HasPrefix(token, "Bearer ") || strings.TrimPrefix(token, "Bearer ") != adminToken {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
