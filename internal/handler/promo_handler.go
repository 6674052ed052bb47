package handler

import (
	"encoding/json"
	"net/http"

	"remitdesk/internal/model"
	"remitdesk/internal/service"

	"github.com/rs/zerolog"
)

// PromoHandler handles promo code HTTP requests.
type PromoHandler struct {
	service service.PromoService
	logger  zerolog.Logger
}

// NewPromoHandler creates a new promo handler.
func NewPromoHandler(service service.PromoService, logger zerolog.Logger) *PromoHandler {
	return &PromoHandler{
		service: service,
		logger:  logger.With().Str("handler", "promo").Logger(),
	}
}

// Validate handles POST /api/promocodes/validate requests.
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required", h.logger)
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be greater than zero", h.logger)
		return
	}

	resp, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Apply handles POST /api/promocodes/apply requests.
func (h *PromoHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required", h.logger)
		return
	}

	resp, err := h.service.Apply(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
