package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"remitdesk/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response is already partially written; nothing useful to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Debug().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps a service error to an HTTP response. Business-rule
// failures surface their message verbatim; anything else is a 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == model.ErrCodePromoNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeError(w, http.StatusInternalServerError, "internal server error", logger)
}
