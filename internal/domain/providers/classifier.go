package providers

import (
	"context"

	"github.com/zatekoja/botornot/internal/domain/entities"
)

// Classifier is a pre-fit binary classifier loaded once at startup.
// Implementations must be safe for concurrent use and must not mutate state on prediction.
type Classifier interface {
	// Predict returns the class label (0 = human, 1 = bot)
	Predict(ctx context.Context, features entities.FeatureVector) (int, error)

	// PredictProba returns [P(class 0), P(class 1)]
	PredictProba(ctx context.Context, features entities.FeatureVector) ([]float64, error)

	// FeatureNames returns the column order the model was fit on
	FeatureNames() []string

	// CategoricalColumns returns the columns the model encodes from category text
	CategoricalColumns() []string
}
