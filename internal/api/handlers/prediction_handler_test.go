package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/botornot/internal/api/handlers"
	"github.com/zatekoja/botornot/internal/domain/entities"
	apperrors "github.com/zatekoja/botornot/pkg/errors"
)

const aliceBody = `{"name":"Alice","gender":"Female","email":"alice@example.com","uses_google_login":true,` +
	`"follower_count":5,"following_count":10,"dataset_count":0,"code_count":1,"discussion_count":0,` +
	`"avg_read_time_minutes":2.5,"registration_ipv4":"1.2.3.4","registration_location":"US",` +
	`"votes_on_notebooks":0,"votes_on_datasets":0,"votes_on_discussions":0}`

type stubPredictionService struct {
	received []*entities.UserProfile
	result   *entities.PredictionResult
	err      error
}

func (s *stubPredictionService) Predict(ctx context.Context, profile *entities.UserProfile) (*entities.PredictionResult, error) {
	s.received = append(s.received, profile)
	return s.result, s.err
}

func postPredict(handler *handlers.PredictionHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Predict(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response
}

func TestPredictionHandler_Predict_Success(t *testing.T) {
	service := &stubPredictionService{result: &entities.PredictionResult{Label: 0, BotProbability: 10}}
	handler := handlers.NewPredictionHandler(service)

	w := postPredict(handler, aliceBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"prediction":0,"bot_probability":10}`, w.Body.String())

	require.Len(t, service.received, 1)
	profile := service.received[0]
	assert.Equal(t, "Alice", entities.StringValue(profile.Name))
	require.NotNil(t, profile.DatasetCount)
	assert.Equal(t, int64(0), *profile.DatasetCount)
	require.NotNil(t, profile.AvgReadTimeMinutes)
	assert.Equal(t, 2.5, *profile.AvgReadTimeMinutes)
}

func TestPredictionHandler_Predict_ValidationError(t *testing.T) {
	service := &stubPredictionService{err: apperrors.NewValidationError("validation failed",
		apperrors.FieldError{Field: "follower_count", Message: "must be greater than or equal to 0"})}
	handler := handlers.NewPredictionHandler(service)

	w := postPredict(handler, strings.Replace(aliceBody, `"follower_count":5`, `"follower_count":-1`, 1))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t,
		`{"error":"validation failed","fields":[{"field":"follower_count","message":"must be greater than or equal to 0"}]}`,
		w.Body.String())
}

func TestPredictionHandler_Predict_TypeMismatch(t *testing.T) {
	service := &stubPredictionService{}
	handler := handlers.NewPredictionHandler(service)

	w := postPredict(handler, strings.Replace(aliceBody, `"follower_count":5`, `"follower_count":"five"`, 1))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response := decodeBody(t, w)
	fields, ok := response["fields"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "follower_count", fields[0].(map[string]interface{})["field"])
	assert.Empty(t, service.received)
}

func TestPredictionHandler_Predict_BadRequest(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"name":`,
		"empty body":     ``,
		"array body":     `[1,2,3]`,
		"null body":      `null`,
		"null padded":    " null \n",
		"trailing data":  aliceBody + aliceBody,
		"too large":      `{"name":"` + strings.Repeat("a", handlers.MaxRequestBodyBytes) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			service := &stubPredictionService{}
			handler := handlers.NewPredictionHandler(service)

			w := postPredict(handler, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeBody(t, w)["error"])
			assert.Empty(t, service.received)
		})
	}
}

func TestPredictionHandler_Predict_InferenceError(t *testing.T) {
	service := &stubPredictionService{err: apperrors.NewInferenceError("model inference failed",
		errors.New(`unknown category "Other" for GENDER`))}
	handler := handlers.NewPredictionHandler(service)

	w := postPredict(handler, aliceBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "model inference failed", response["error"])
	assert.Contains(t, response["detail"], "unknown category")
}

func TestPredictionHandler_Predict_UnexpectedError(t *testing.T) {
	service := &stubPredictionService{err: errors.New("boom")}
	handler := handlers.NewPredictionHandler(service)

	w := postPredict(handler, aliceBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
