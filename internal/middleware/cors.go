package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// FunctionAllowedHeaders is the header allow-list the browser client sends to
// every function.
var FunctionAllowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// CORSHeaders are written on every function response, including OPTIONS.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": strings.Join(FunctionAllowedHeaders, ", "),
	}
}

// SetCORSHeaders copies CORSHeaders onto h.
func SetCORSHeaders(h http.Header) {
	for k, v := range CORSHeaders() {
		h.Set(k, v)
	}
}

// CORSMiddleware configures CORS settings. Functions are called from any
// origin without credentials.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   FunctionAllowedHeaders,
		ExposedHeaders:   []string{"X-Acquisition-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}

// DefaultMiddlewareStack returns a stack of commonly used middleware
func DefaultMiddlewareStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Compress(5),
	}
}
