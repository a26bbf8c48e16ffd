package evaluation

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestConfusionMatrix_Add(t *testing.T) {
	var m ConfusionMatrix
	m.Add(1, 1)
	m.Add(1, 1)
	m.Add(0, 1)
	m.Add(0, 0)
	m.Add(0, 0)
	m.Add(0, 0)
	m.Add(1, 0)

	want := ConfusionMatrix{TruePositives: 2, FalsePositives: 1, TrueNegatives: 3, FalseNegatives: 1}
	if m != want {
		t.Fatalf("expected %+v, got %+v", want, m)
	}
	if m.Total() != 7 {
		t.Errorf("expected total 7, got %d", m.Total())
	}
}

func TestConfusionMatrix_Scores(t *testing.T) {
	m := ConfusionMatrix{TruePositives: 2, FalsePositives: 1, TrueNegatives: 3, FalseNegatives: 0}

	if got := m.Accuracy(); !almostEqual(got, 5.0/6.0) {
		t.Errorf("expected accuracy 5/6, got %f", got)
	}
	if got := m.Precision(); !almostEqual(got, 2.0/3.0) {
		t.Errorf("expected precision 2/3, got %f", got)
	}
	if got := m.Recall(); !almostEqual(got, 1.0) {
		t.Errorf("expected recall 1.0, got %f", got)
	}
	if got := m.F1(); !almostEqual(got, 0.8) {
		t.Errorf("expected f1 0.8, got %f", got)
	}
}

func TestConfusionMatrix_Empty(t *testing.T) {
	var m ConfusionMatrix
	// Undefined ratios are reported as 0
	for name, got := range map[string]float64{
		"accuracy":  m.Accuracy(),
		"precision": m.Precision(),
		"recall":    m.Recall(),
		"f1":        m.F1(),
	} {
		if !almostEqual(got, 0.0) {
			t.Errorf("expected %s 0.0, got %f", name, got)
		}
	}
}

func TestConfusionMatrix_NoBotsFlagged(t *testing.T) {
	m := ConfusionMatrix{TrueNegatives: 4, FalseNegatives: 2}
	if got := m.Precision(); !almostEqual(got, 0.0) {
		t.Errorf("expected precision 0.0, got %f", got)
	}
	if got := m.Recall(); !almostEqual(got, 0.0) {
		t.Errorf("expected recall 0.0, got %f", got)
	}
}

func TestGuardrails_Violations(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MinAccuracy: 0.8, MinRecall: 0.9, MaxFailed: -3})

	ok := &EvalSummary{Accuracy: 0.85, Recall: 1.0}
	if v := g.Violations(ok); len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}

	bad := &EvalSummary{Accuracy: 0.5, Recall: 0.5, Failed: 1}
	if v := g.Violations(bad); len(v) != 3 {
		t.Errorf("expected 3 violations, got %v", v)
	}
}
