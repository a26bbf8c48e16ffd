package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zatekoja/botornot/internal/adapters/model"
	"github.com/zatekoja/botornot/internal/application/services"
	"github.com/zatekoja/botornot/internal/evaluation"
	"github.com/zatekoja/botornot/internal/infrastructure/clients/predictor"
	"github.com/zatekoja/botornot/internal/infrastructure/observability"
	"github.com/zatekoja/botornot/pkg/config"
)

type options struct {
	modelPath   string
	goldenPath  string
	server      string
	minAccuracy float64
	minRecall   float64
}

func main() {
	_ = godotenv.Load()

	if err := newCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	opts := &options{}
	predictorCfg := config.LoadPredictor()

	cmd := &cobra.Command{
		Use:          "evaluate",
		Short:        "Score a classifier against the labeled golden profiles",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			observability.InitLogger("bot-or-not-evaluate", "development", "info")

			profiles, err := evaluation.LoadGoldenProfiles(opts.goldenPath)
			if err != nil {
				return err
			}
			if err := evaluation.ValidateGoldenProfiles(profiles); err != nil {
				return err
			}

			target, err := newPredictor(opts, predictorCfg)
			if err != nil {
				return err
			}

			summary, err := evaluation.NewRunner(target).Run(cmd.Context(), profiles)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			// Output results as JSON
			out, _ := json.MarshalIndent(summary, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
				MinAccuracy: opts.minAccuracy,
				MinRecall:   opts.minRecall,
			})
			if violations := guardrails.Violations(summary); len(violations) > 0 {
				return fmt.Errorf("guardrails failed: %s", strings.Join(violations, "; "))
			}
			return nil
		},
	}

	defaultModel := os.Getenv("MODEL_PATH")
	if defaultModel == "" {
		defaultModel = "model/bot_classifier.json"
	}
	cmd.Flags().StringVar(&opts.modelPath, "model", defaultModel, "model artifact to evaluate in-process")
	cmd.Flags().StringVar(&opts.goldenPath, "golden", "model/golden_profiles.json", "labeled profiles (JSON or YAML)")
	cmd.Flags().StringVar(&opts.server, "server", "", "evaluate a running service instead of a local artifact")
	cmd.Flags().Float64Var(&opts.minAccuracy, "min-accuracy", 0, "fail below this accuracy")
	cmd.Flags().Float64Var(&opts.minRecall, "min-recall", 0, "fail below this bot recall")
	return cmd
}

func newPredictor(opts *options, cfg config.PredictorConfig) (evaluation.Predictor, error) {
	if opts.server != "" {
		log.Info().Str("server", opts.server).Msg("Evaluating remote service")
		return predictor.NewClient(opts.server, cfg.Timeout), nil
	}

	classifier, err := model.Load(opts.modelPath)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("model_type", classifier.ModelType()).
		Int("trees", classifier.TreeCount()).
		Str("path", opts.modelPath).
		Msg("Evaluating local model")
	svc, err := services.NewPredictionService(classifier, nil)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
