package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/phoo-bakery/api/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// IdentifyStaff attaches staff claims when the request carries a valid bearer
// token. Everything else, including malformed or expired tokens, is served
// anonymously: the token only names who made a change.
func IdentifyStaff(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Printf("WARNING: ignoring non-bearer authorization on %s %s", r.Method, r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ValidateToken(jwtSecret, parts[1])
			if err != nil {
				log.Printf("WARNING: ignoring invalid staff token on %s %s: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// StaffName returns the identified staff member, or "" for anonymous requests.
func StaffName(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.StaffName
	}
	return ""
}
