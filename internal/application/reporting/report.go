package reporting

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/zatekoja/botornot/internal/domain/entities"
)

// RiskLevel buckets a bot probability for presentation
type RiskLevel string

const (
	RiskHigh     RiskLevel = "high"
	RiskModerate RiskLevel = "moderate"
	RiskLow      RiskLevel = "low"
)

// Risk is a presentation tier; the prediction service never computes it
type Risk struct {
	Level       RiskLevel
	Description string
	Suggestion  string
}

// Categorize maps a 0-100 bot probability onto a risk tier.
// Bounds are exclusive: exactly 70 is moderate, exactly 30 is low.
func Categorize(botProbability float64) Risk {
	switch {
	case botProbability > 70:
		return Risk{
			Level:       RiskHigh,
			Description: "⚠️ **High Risk** - Strong indicators of automation.",
			Suggestion:  "🛑 Recommended for deeper investigation.",
		}
	case botProbability > 30:
		return Risk{
			Level:       RiskModerate,
			Description: "🟡 **Moderate Risk** - Some suspicious patterns.",
			Suggestion:  "⚠️ Monitor activity or request additional verification.",
		}
	default:
		return Risk{
			Level:       RiskLow,
			Description: "🟢 **Low Risk** - Likely a genuine human user.",
			Suggestion:  "✅ No immediate action needed.",
		}
	}
}

// Report is the downloadable summary of one prediction
type Report struct {
	Name           string                `json:"Name"`
	Email          string                `json:"Email"`
	Prediction     string                `json:"Prediction"`
	BotProbability float64               `json:"Bot Probability (%)"`
	RiskCategory   string                `json:"Risk Category"`
	Suggestion     string                `json:"Suggestion"`
	InputSummary   *entities.UserProfile `json:"Input Summary"`
}

// BuildReport combines the submitted profile with the service's answer
func BuildReport(profile *entities.UserProfile, result *entities.PredictionResult) Report {
	prediction := "Human"
	if result.IsBot() {
		prediction = "Bot"
	}
	risk := Categorize(result.BotProbability)

	return Report{
		Name:           entities.StringValue(profile.Name),
		Email:          entities.StringValue(profile.Email),
		Prediction:     prediction,
		BotProbability: math.Round(result.BotProbability*100) / 100,
		RiskCategory:   risk.Description,
		Suggestion:     risk.Suggestion,
		InputSummary:   profile,
	}
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// FileName is the report file name for a user. Path separators in name are
// replaced so the file always lands directly in the report directory.
func FileName(name string) string {
	return fileNameReplacer.Replace(name) + "_bot_prediction_report.json"
}

// Write stores the report as indented JSON under dir and returns its path
func Write(dir string, report Report) (string, error) {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, FileName(report.Name))
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
