package evaluation

import (
	"context"
	"time"

	"github.com/zatekoja/botornot/internal/domain/entities"
)

// Predictor is satisfied by the in-process service and by the HTTP client.
type Predictor interface {
	Predict(ctx context.Context, profile *entities.UserProfile) (*entities.PredictionResult, error)
}

// Runner runs evaluation across a set of golden profiles.
type Runner struct {
	predictor Predictor
}

func NewRunner(p Predictor) *Runner {
	return &Runner{predictor: p}
}

func (r *Runner) Run(ctx context.Context, profiles []GoldenProfile) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalProfiles: len(profiles),
	}

	var latency time.Duration
	for i := range profiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gp := &profiles[i]

		start := time.Now()
		prediction, err := r.predictor.Predict(ctx, &gp.Profile)
		duration := time.Since(start)
		latency += duration

		result := EvalResult{
			ProfileID:     gp.ID,
			ExpectedLabel: gp.ExpectedLabel,
			Latency:       duration,
		}
		if err != nil {
			result.Error = err.Error()
			summary.Failed++
			summary.Misses = append(summary.Misses, result)
			continue
		}

		result.PredictedLabel = prediction.Label
		result.BotProbability = prediction.BotProbability
		summary.Matrix.Add(result.ExpectedLabel, result.PredictedLabel)
		if !result.Correct() {
			summary.Misses = append(summary.Misses, result)
		}
	}

	summary.Accuracy = summary.Matrix.Accuracy()
	summary.Precision = summary.Matrix.Precision()
	summary.Recall = summary.Matrix.Recall()
	summary.F1 = summary.Matrix.F1()
	if summary.TotalProfiles > 0 {
		summary.AvgLatency = latency / time.Duration(summary.TotalProfiles)
	}

	return summary, nil
}
