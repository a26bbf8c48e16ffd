package evaluation_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/botornot/internal/adapters/model"
	"github.com/zatekoja/botornot/internal/application/services"
	"github.com/zatekoja/botornot/internal/domain/entities"
	"github.com/zatekoja/botornot/internal/evaluation"
)

type scriptedPredictor map[string]*entities.PredictionResult

func (s scriptedPredictor) Predict(ctx context.Context, profile *entities.UserProfile) (*entities.PredictionResult, error) {
	if result, ok := s[entities.StringValue(profile.Name)]; ok {
		return result, nil
	}
	return nil, errors.New("no script for profile")
}

func golden(id string, expected int) evaluation.GoldenProfile {
	name := id
	return evaluation.GoldenProfile{ID: id, ExpectedLabel: expected, Profile: entities.UserProfile{Name: &name}}
}

func TestRunner_Run(t *testing.T) {
	predictor := scriptedPredictor{
		"human": {Label: entities.LabelHuman, BotProbability: 12},
		"bot":   {Label: entities.LabelBot, BotProbability: 91},
		"miss":  {Label: entities.LabelBot, BotProbability: 55},
	}
	profiles := []evaluation.GoldenProfile{
		golden("human", entities.LabelHuman),
		golden("bot", entities.LabelBot),
		golden("miss", entities.LabelHuman),
		golden("broken", entities.LabelBot),
	}

	summary, err := evaluation.NewRunner(predictor).Run(context.Background(), profiles)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalProfiles)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, evaluation.ConfusionMatrix{TruePositives: 1, FalsePositives: 1, TrueNegatives: 1}, summary.Matrix)
	assert.InDelta(t, 2.0/3.0, summary.Accuracy, 1e-9)
	require.Len(t, summary.Misses, 2)
	assert.Equal(t, "miss", summary.Misses[0].ProfileID)
	assert.Equal(t, "broken", summary.Misses[1].ProfileID)
	assert.NotEmpty(t, summary.Misses[1].Error)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := evaluation.NewRunner(scriptedPredictor{}).Run(ctx, []evaluation.GoldenProfile{golden("a", 0)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_BundledModelOnGoldenSet(t *testing.T) {
	classifier, err := model.Load(filepath.Join("..", "..", "model", "bot_classifier.json"))
	require.NoError(t, err)
	svc, err := services.NewPredictionService(classifier, nil)
	require.NoError(t, err)

	profiles, err := evaluation.LoadGoldenProfiles(filepath.Join("..", "..", "model", "golden_profiles.json"))
	require.NoError(t, err)

	summary, err := evaluation.NewRunner(svc).Run(context.Background(), profiles)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, evaluation.ConfusionMatrix{TruePositives: 2, FalsePositives: 1, TrueNegatives: 3}, summary.Matrix)
	assert.InDelta(t, 1.0, summary.Recall, 1e-9)
	require.Len(t, summary.Misses, 1)
	assert.Equal(t, "lurker", summary.Misses[0].ProfileID)

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{MinAccuracy: 0.8, MinRecall: 0.9})
	assert.Empty(t, guardrails.Violations(summary))
}
