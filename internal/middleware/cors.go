package middleware

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/yatube-lab/backend/config"
)

// AllowCors wraps handler with the CORS policy of the api server. Without
// configured origins every origin is allowed to read public pages.
func AllowCors(cfg config.APIServerConfigs, handler http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   cfg.AllowOrigin,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: len(cfg.AllowOrigin) > 0,
	}

	return cors.New(opts).Handler(handler)
}
