package model

import (
	"context"
	"fmt"

	"github.com/zatekoja/botornot/internal/domain/entities"
)

// TreeEnsemble is an immutable tree classifier. A random forest averages the leaf class
// distributions of its trees; a decision tree is the single-tree case.
type TreeEnsemble struct {
	modelType    string
	classes      []int
	featureNames []string
	categorical  map[string]CategoricalEncoding
	trees        []Tree
}

func newTreeEnsemble(a *Artifact) *TreeEnsemble {
	return &TreeEnsemble{
		modelType:    a.ModelType,
		classes:      append([]int(nil), a.Classes...),
		featureNames: append([]string(nil), a.FeatureNames...),
		categorical:  a.Categorical,
		trees:        a.Trees,
	}
}

// ModelType returns the artifact's declared model type
func (m *TreeEnsemble) ModelType() string {
	return m.modelType
}

// TreeCount returns the number of trees in the ensemble
func (m *TreeEnsemble) TreeCount() int {
	return len(m.trees)
}

// FeatureNames returns a copy of the column order the model was fit on
func (m *TreeEnsemble) FeatureNames() []string {
	return append([]string(nil), m.featureNames...)
}

// CategoricalColumns returns the columns carrying a categorical encoding, in column order
func (m *TreeEnsemble) CategoricalColumns() []string {
	var names []string
	for _, name := range m.featureNames {
		if _, ok := m.categorical[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// PredictProba returns the mean class distribution over all trees.
func (m *TreeEnsemble) PredictProba(ctx context.Context, features entities.FeatureVector) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x, err := m.encode(features)
	if err != nil {
		return nil, err
	}

	proba := make([]float64, len(m.classes))
	for i, tree := range m.trees {
		leaf, err := tree.leaf(x)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		total := 0.0
		for _, w := range leaf.Value {
			total += w
		}
		for c, w := range leaf.Value {
			proba[c] += w / total
		}
	}
	for c := range proba {
		proba[c] /= float64(len(m.trees))
	}
	return proba, nil
}

// Predict returns the most probable class; ties go to the lower class.
func (m *TreeEnsemble) Predict(ctx context.Context, features entities.FeatureVector) (int, error) {
	proba, err := m.PredictProba(ctx, features)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return m.classes[best], nil
}

// encode lays the feature vector out in the model's column order.
func (m *TreeEnsemble) encode(features entities.FeatureVector) ([]float64, error) {
	byName := make(map[string]entities.FeatureValue, len(m.featureNames))
	for _, col := range features.Columns() {
		byName[col.Name] = col
	}

	x := make([]float64, len(m.featureNames))
	for i, name := range m.featureNames {
		col, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("model expects column %q which the feature vector does not provide", name)
		}
		if !col.Categorical {
			x[i] = col.Number
			continue
		}
		enc, ok := m.categorical[name]
		if !ok {
			return nil, fmt.Errorf("no categorical encoding for column %q", name)
		}
		code, ok := enc.Categories[col.Text]
		switch {
		case ok:
			x[i] = code
		case enc.Unknown != nil:
			x[i] = *enc.Unknown
		default:
			return nil, fmt.Errorf("unknown category %q for column %q", col.Text, name)
		}
	}
	return x, nil
}

func (t Tree) leaf(x []float64) (TreeNode, error) {
	idx := 0
	for {
		if idx < 0 || idx >= len(t.Nodes) {
			return TreeNode{}, fmt.Errorf("invalid tree state at node %d", idx)
		}
		node := t.Nodes[idx]
		if node.IsLeaf() {
			return node, nil
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
