package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/communitykitchen/foodshare-backend/pkg/config"
)

// CORS returns middleware that applies the API's allowed origin policy.
// Credentials must stay enabled because the access token travels in a cookie.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
