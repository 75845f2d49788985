package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows any origin in development and no cross-origin requests
// otherwise.
func Cors(development bool) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	options.AllowOriginFunc = func(origin string) bool {
		return development
	}
	return cors.New(options).Handler
}
