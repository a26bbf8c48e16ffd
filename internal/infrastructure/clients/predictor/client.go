package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/botornot/internal/domain/entities"
	"github.com/zatekoja/botornot/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/botornot/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

// maxErrorBody bounds how much of a failed response is kept
const maxErrorBody = 4 << 10

type Client interface {
	Predict(ctx context.Context, profile *entities.UserProfile) (*entities.PredictionResult, error)
	Health(ctx context.Context) error
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// StatusError is a non-2xx answer from the prediction service
type StatusError struct {
	StatusCode int
	Message    string
	Detail     string
	Fields     []apperrors.FieldError
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("prediction service returned status %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	for _, f := range e.Fields {
		msg += "; " + f.Field + " " + f.Message
	}
	if e.Message == "" && e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	trimmed := strings.TrimRight(baseURL, "/")
	return &HTTPClient{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends one profile to POST /predict. There is no retry.
func (c *HTTPClient) Predict(ctx context.Context, profile *entities.UserProfile) (*entities.PredictionResult, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode profile", err)
	}

	out := &entities.PredictionResult{}
	if err := c.doJSON(ctx, http.MethodPost, "/predict", bytes.NewReader(payload), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health checks GET /health
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body io.Reader, out interface{}) (err error) {
	ctx, span := observability.StartSpan(ctx, "predictor "+method+" "+path)
	defer func() {
		if err != nil {
			observability.RecordError(span, err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewExternalError("prediction service unreachable at "+c.baseURL, err)
	}
	defer resp.Body.Close()

	observability.SetSpanAttributes(span,
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewExternalError("prediction request failed", statusError(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError("malformed prediction response", err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}

	var decoded struct {
		Error  string                 `json:"error"`
		Detail string                 `json:"detail"`
		Fields []apperrors.FieldError `json:"fields"`
	}
	if json.Unmarshal(raw, &decoded) == nil {
		se.Message = decoded.Error
		se.Detail = decoded.Detail
		se.Fields = decoded.Fields
	}
	return se
}
