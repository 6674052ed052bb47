package router

import (
	"net/http"
	"strings"

	"remitdesk/internal/handler"
	"remitdesk/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	promoHandler *handler.PromoHandler,
	walletHandler *handler.WalletHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/promocodes/validate", promoHandler.Validate)
	mux.HandleFunc("/api/promocodes/apply", promoHandler.Apply)

	// Wallet routes: GET /api/wallet/{userId} and POST /api/wallet/{userId}/redeem
	mux.HandleFunc("/api/wallet/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/redeem") {
			walletHandler.Redeem(w, r)
			return
		}
		walletHandler.Balance(w, r)
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
