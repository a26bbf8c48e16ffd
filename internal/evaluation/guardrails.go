package evaluation

import "fmt"

type GuardrailConfig struct {
	MinAccuracy float64
	MinRecall   float64
	MaxFailed   int
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MaxFailed < 0 {
		config.MaxFailed = 0
	}
	return &Guardrails{config: config}
}

// Violations lists every threshold the summary misses.
func (g *Guardrails) Violations(s *EvalSummary) []string {
	var out []string
	if s.Accuracy < g.config.MinAccuracy {
		out = append(out, fmt.Sprintf("accuracy %.3f below %.3f", s.Accuracy, g.config.MinAccuracy))
	}
	if s.Recall < g.config.MinRecall {
		out = append(out, fmt.Sprintf("recall %.3f below %.3f", s.Recall, g.config.MinRecall))
	}
	if s.Failed > g.config.MaxFailed {
		out = append(out, fmt.Sprintf("%d failed predictions exceed %d", s.Failed, g.config.MaxFailed))
	}
	return out
}
