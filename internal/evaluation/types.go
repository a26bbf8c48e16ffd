package evaluation

import (
	"time"

	"github.com/zatekoja/botornot/internal/domain/entities"
)

// GoldenProfile is a labeled profile with a known answer.
type GoldenProfile struct {
	ID            string               `json:"id" yaml:"id"`
	Profile       entities.UserProfile `json:"profile" yaml:"profile"`
	ExpectedLabel int                  `json:"expected_label" yaml:"expected_label"`
	Note          string               `json:"note,omitempty" yaml:"note,omitempty"`
}

// EvalResult holds the evaluation outcome for a single profile.
type EvalResult struct {
	ProfileID      string        `json:"profile_id"`
	ExpectedLabel  int           `json:"expected_label"`
	PredictedLabel int           `json:"predicted_label"`
	BotProbability float64       `json:"bot_probability"`
	Latency        time.Duration `json:"latency"`
	Error          string        `json:"error,omitempty"`
}

// Correct reports whether the prediction matched the label.
func (r EvalResult) Correct() bool {
	return r.Error == "" && r.ExpectedLabel == r.PredictedLabel
}

// EvalSummary holds aggregate metrics across all golden profiles.
type EvalSummary struct {
	TotalProfiles int             `json:"total_profiles"`
	Failed        int             `json:"failed"` // predictor errors, excluded from the matrix
	Matrix        ConfusionMatrix `json:"confusion_matrix"`
	Accuracy      float64         `json:"accuracy"`
	Precision     float64         `json:"precision"`
	Recall        float64         `json:"recall"`
	F1            float64         `json:"f1"`
	AvgLatency    time.Duration   `json:"avg_latency"`
	Misses        []EvalResult    `json:"misses,omitempty"`
}
