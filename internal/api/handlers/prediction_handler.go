package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/zatekoja/botornot/internal/domain/entities"
	apperrors "github.com/zatekoja/botornot/pkg/errors"
)

// MaxRequestBodyBytes caps the size of a /predict payload
const MaxRequestBodyBytes = 1 << 20

// PredictionService is the subset of the prediction service used by the handler
type PredictionService interface {
	Predict(ctx context.Context, profile *entities.UserProfile) (*entities.PredictionResult, error)
}

// PredictionHandler handles prediction HTTP requests
type PredictionHandler struct {
	service PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(service PredictionService) *PredictionHandler {
	return &PredictionHandler{
		service: service,
	}
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	profile, err := decodeProfile(w, r)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithAppError(w, r, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Predict(r.Context(), profile)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// decodeProfile reads exactly one JSON object from the body.
// Type mismatches on a named field come back as validation errors.
func decodeProfile(w http.ResponseWriter, r *http.Request) (*entities.UserProfile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)

	// a literal null leaves profile nil
	var profile *entities.UserProfile
	if err := dec.Decode(&profile); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxErr):
			return nil, errors.New("request body too large")
		case errors.Is(err, io.EOF):
			return nil, errors.New("request body is empty")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return nil, apperrors.NewValidationError("validation failed", apperrors.FieldError{
				Field:   typeErr.Field,
				Message: "must be of type " + typeErr.Type.String(),
			})
		case errors.As(err, &typeErr):
			return nil, errors.New("request body must be a JSON object")
		default:
			return nil, errors.New("malformed JSON body")
		}
	}

	if profile == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	if dec.More() {
		return nil, errors.New("request body must contain a single JSON object")
	}

	return profile, nil
}
