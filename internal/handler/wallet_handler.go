package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"remitdesk/internal/service"

	"github.com/rs/zerolog"
)

// WalletHandler handles bonus wallet HTTP requests.
type WalletHandler struct {
	service service.WalletService
	logger  zerolog.Logger
}

// NewWalletHandler creates a new wallet handler.
func NewWalletHandler(service service.WalletService, logger zerolog.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		logger:  logger.With().Str("handler", "wallet").Logger(),
	}
}

// redeemRequest is the payload for POST /api/wallet/{userId}/redeem.
type redeemRequest struct {
	Amount float64 `json:"amount"`
}

// Balance handles GET /api/wallet/{userId} requests.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	userID := userIDFromPath(r.URL.Path)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user ID is required", h.logger)
		return
	}

	resp, err := h.service.Balance(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Redeem handles POST /api/wallet/{userId}/redeem requests.
func (h *WalletHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	userID := userIDFromPath(strings.TrimSuffix(r.URL.Path, "/redeem"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user ID is required", h.logger)
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be greater than zero", h.logger)
		return
	}

	resp, err := h.service.Redeem(r.Context(), userID, req.Amount)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// userIDFromPath extracts the user ID segment from /api/wallet/{userId}.
func userIDFromPath(path string) string {
	const prefix = "/api/wallet/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}
