package middleware

import (
	"net/http"

	"github.com/almanacai/almanac/internal/models"
)

// Paths reachable without a key. The root and health probe must work for
// load balancers that can't attach headers.
var publicPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

func extractKey(r *http.Request, headerName string) string {
	if key := r.Header.Get(headerName); key != "" {
		return key
	}
	if c, err := r.Cookie("api_key"); err == nil {
		return c.Value
	}
	return ""
}

// Auth requires a known API key on every non-public path. A missing key is
// distinguished from an unknown one so clients can tell misconfiguration
// from revocation.
func Auth(apiKeys []string, headerName string) func(http.Handler) http.Handler {
	valid := make(map[string]bool, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			valid[k] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key := extractKey(r, headerName)
			switch {
			case key == "":
				models.WriteError(w, http.StatusUnauthorized, "API key required")
			case !valid[key]:
				models.WriteError(w, http.StatusForbidden, "invalid API key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
