package services

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/zatekoja/botornot/internal/domain/entities"
	"github.com/zatekoja/botornot/internal/domain/providers"
	"github.com/zatekoja/botornot/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/botornot/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// PredictionService classifies user profiles as human or bot
type PredictionService struct {
	classifier providers.Classifier
	validator  *ProfileValidator
	metrics    *observability.Metrics
}

// NewPredictionService creates a new prediction service.
// The classifier must have been fit on entities.FeatureColumns in that order and encode
// exactly the categorical columns.
func NewPredictionService(classifier providers.Classifier, metrics *observability.Metrics) (*PredictionService, error) {
	if classifier == nil {
		return nil, apperrors.NewStartupError("classifier is not configured", nil)
	}
	if names := classifier.FeatureNames(); !slices.Equal(names, entities.FeatureColumns) {
		return nil, apperrors.NewStartupError("incompatible model",
			fmt.Errorf("model features %v do not match expected columns %v", names, entities.FeatureColumns))
	}
	if encoded, want := classifier.CategoricalColumns(), entities.CategoricalColumns(); !slices.Equal(encoded, want) {
		return nil, apperrors.NewStartupError("incompatible model",
			fmt.Errorf("model encodes categorical columns %v, expected %v", encoded, want))
	}

	return &PredictionService{
		classifier: classifier,
		validator:  NewProfileValidator(),
		metrics:    metrics,
	}, nil
}

// Predict validates the profile, projects it and runs the classifier.
// Invalid profiles never reach the classifier.
func (s *PredictionService) Predict(ctx context.Context, profile *entities.UserProfile) (*entities.PredictionResult, error) {
	ctx, span := observability.StartSpan(ctx, "PredictionService.Predict")
	defer span.End()

	if err := s.validator.Validate(profile); err != nil {
		if appErr, ok := apperrors.As(err); ok {
			observability.RecordValidationFailure(ctx, s.metrics, len(appErr.Fields))
		}
		observability.RecordError(span, err)
		return nil, err
	}

	features := entities.ProjectFeatures(profile)

	start := time.Now()
	label, err := s.classifier.Predict(ctx, features)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInferenceError("model inference failed", err)
	}
	proba, err := s.classifier.PredictProba(ctx, features)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInferenceError("model inference failed", err)
	}
	elapsed := time.Since(start)

	if err := checkOutput(label, proba); err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInferenceError("model inference failed", err)
	}

	result := &entities.PredictionResult{
		Label:          label,
		BotProbability: proba[entities.LabelBot] * 100,
	}

	observability.RecordPrediction(ctx, s.metrics, label, elapsed)
	observability.SetSpanAttributes(span,
		attribute.Int("prediction.label", result.Label),
		attribute.Float64("prediction.bot_probability", result.BotProbability),
	)
	observability.LoggerFromContext(ctx).Debug().
		Int("prediction", result.Label).
		Float64("bot_probability", result.BotProbability).
		Dur("inference", elapsed).
		Msg("profile classified")

	return result, nil
}

func checkOutput(label int, proba []float64) error {
	if label != entities.LabelHuman && label != entities.LabelBot {
		return fmt.Errorf("unexpected class label %d", label)
	}
	if len(proba) != 2 {
		return fmt.Errorf("expected 2 class probabilities, got %d", len(proba))
	}
	for _, p := range proba {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("class probability %v outside [0, 1]", p)
		}
	}
	return nil
}
