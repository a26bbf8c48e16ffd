package evaluation

import "github.com/zatekoja/botornot/internal/domain/entities"

// ConfusionMatrix counts outcomes with bot as the positive class.
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// Add records one expected/predicted pair.
func (m *ConfusionMatrix) Add(expected, predicted int) {
	switch {
	case expected == entities.LabelBot && predicted == entities.LabelBot:
		m.TruePositives++
	case expected == entities.LabelHuman && predicted == entities.LabelBot:
		m.FalsePositives++
	case expected == entities.LabelHuman && predicted == entities.LabelHuman:
		m.TrueNegatives++
	default:
		m.FalseNegatives++
	}
}

// Total is the number of recorded pairs.
func (m ConfusionMatrix) Total() int {
	return m.TruePositives + m.FalsePositives + m.TrueNegatives + m.FalseNegatives
}

// Accuracy is the fraction of correct predictions. Returns 0.0 for an empty matrix.
func (m ConfusionMatrix) Accuracy() float64 {
	return ratio(m.TruePositives+m.TrueNegatives, m.Total())
}

// Precision is the fraction of predicted bots that are bots. Returns 0.0 when nothing was flagged.
func (m ConfusionMatrix) Precision() float64 {
	return ratio(m.TruePositives, m.TruePositives+m.FalsePositives)
}

// Recall is the fraction of bots that were flagged. Returns 0.0 when there are no bots.
func (m ConfusionMatrix) Recall() float64 {
	return ratio(m.TruePositives, m.TruePositives+m.FalseNegatives)
}

// F1 is the harmonic mean of precision and recall.
func (m ConfusionMatrix) F1() float64 {
	p, r := m.Precision(), m.Recall()
	if p+r == 0 {
		return 0.0
	}
	return 2 * p * r / (p + r)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0.0
	}
	return float64(num) / float64(den)
}
