package entities

// Class labels produced by the classifier
const (
	LabelHuman = 0
	LabelBot   = 1
)

// PredictionResult is returned for every successful classification
type PredictionResult struct {
	Label          int     `json:"prediction"`
	BotProbability float64 `json:"bot_probability"` // percentage, 0-100
}

// IsBot reports whether the label is the bot class
func (r PredictionResult) IsBot() bool {
	return r.Label == LabelBot
}
