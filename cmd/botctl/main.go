package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zatekoja/botornot/internal/application/reporting"
	"github.com/zatekoja/botornot/internal/infrastructure/clients/predictor"
	"github.com/zatekoja/botornot/pkg/config"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.LoadPredictor()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	server  string
	timeout time.Duration
}

func (o *rootOptions) client() predictor.Client {
	return predictor.NewClient(o.server, o.timeout)
}

func newRootCmd(cfg config.PredictorConfig) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "botctl",
		Short:        "Ask the Bot or Not service whether a user is automated",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", cfg.URL, "prediction service base URL (PREDICTOR_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.Timeout, "request timeout (PREDICTOR_TIMEOUT)")

	root.AddCommand(newPredictCmd(opts), newHealthCmd(opts))
	return root
}

func newPredictCmd(opts *rootOptions) *cobra.Command {
	flags := &profileFlags{}
	var reportDir string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify one user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := flags.profile(cmd.Flags())
			if err != nil {
				return err
			}

			result, err := opts.client().Predict(cmd.Context(), profile)
			if err != nil {
				return err
			}

			report := reporting.BuildReport(profile, result)
			printReport(cmd.OutOrStdout(), report)

			if reportDir != "" {
				path, err := reporting.Write(reportDir, report)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "write a JSON report into this directory")
	return cmd
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the service is up with its model loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func printReport(w io.Writer, report reporting.Report) {
	if report.Prediction == "Bot" {
		fmt.Fprintln(w, "⚠️ Prediction: User is likely a BOT!")
	} else {
		fmt.Fprintln(w, "✅ Prediction: User is likely a HUMAN!")
	}
	fmt.Fprintf(w, "Bot Probability: %.2f%%\n", report.BotProbability)
	fmt.Fprintf(w, "Bot Risk Category: %s\n", report.RiskCategory)
	fmt.Fprintln(w, report.Suggestion)
}
