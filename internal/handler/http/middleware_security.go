package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-api-starter/internal/config"
)

// securityHeaders sets the hardening response headers on every response.
// Enabled via HELMET_ENABLED.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "DENY")
		header.Set("X-XSS-Protection", "0")
		header.Set("Referrer-Policy", "no-referrer")
		header.Set("Cross-Origin-Opener-Policy", "same-origin")
		header.Set("Cross-Origin-Resource-Policy", "same-origin")
		header.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")

		next.ServeHTTP(w, r)
	})
}

// corsOptions translates the CORS config section into go-chi/cors options.
// Origin may hold a comma-separated list; "*" allows any origin.
func corsOptions(cfg config.CORS) cors.Options {
	origins := strings.Split(cfg.Origin, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", correlationIDHeader},
		ExposedHeaders:   []string{correlationIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: cfg.Credentials,
		MaxAge:           300,
	}
}
