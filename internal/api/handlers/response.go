package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/botornot/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/botornot/pkg/errors"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())

	appErr, ok := apperrors.As(err)
	if !ok {
		logger.Error().Err(err).Msg("unexpected error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  appErr.Message,
			"fields": appErr.Fields,
		})
	case apperrors.ErrorTypeInference:
		logger.Error().Err(err).Msg("model inference failed")
		detail := appErr.Message
		if appErr.Err != nil {
			detail = appErr.Err.Error()
		}
		respondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "model inference failed",
			"detail": detail,
		})
	default:
		logger.Error().Err(err).Msg("request failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
