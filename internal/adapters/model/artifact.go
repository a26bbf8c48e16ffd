package model

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported model types
const (
	TypeRandomForest = "random_forest"
	TypeDecisionTree = "decision_tree"
)

// Artifact is the serialized form of a fitted tree ensemble as written by the export step
// of the training pipeline.
type Artifact struct {
	ModelType    string                         `json:"model_type" yaml:"model_type"`
	Classes      []int                          `json:"classes" yaml:"classes"`
	FeatureNames []string                       `json:"feature_names" yaml:"feature_names"`
	Categorical  map[string]CategoricalEncoding `json:"categorical" yaml:"categorical"`
	Trees        []Tree                         `json:"trees" yaml:"trees"`
}

// CategoricalEncoding maps category text to the numeric code used at fit time.
// Unknown, when set, is used for categories not seen during training.
type CategoricalEncoding struct {
	Categories map[string]float64 `json:"categories" yaml:"categories"`
	Unknown    *float64           `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// Tree is a flattened binary tree; node 0 is the root.
type Tree struct {
	Nodes []TreeNode `json:"nodes" yaml:"nodes"`
}

// TreeNode is either a split (Left/Right >= 0) or a leaf (Left == -1) carrying per-class weights.
type TreeNode struct {
	Feature   int       `json:"feature" yaml:"feature"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Left      int       `json:"left" yaml:"left"`
	Right     int       `json:"right" yaml:"right"`
	Value     []float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

// IsLeaf reports whether the node terminates a decision path
func (n TreeNode) IsLeaf() bool {
	return n.Left == -1
}

func decodeArtifact(path string, payload []byte) (*Artifact, error) {
	var a Artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(payload, &a); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	switch a.ModelType {
	case TypeRandomForest:
	case TypeDecisionTree:
		if len(a.Trees) != 1 {
			return fmt.Errorf("decision_tree artifact must contain exactly one tree, got %d", len(a.Trees))
		}
	default:
		return fmt.Errorf("unsupported model type %q", a.ModelType)
	}

	if len(a.Classes) != 2 || a.Classes[0] != 0 || a.Classes[1] != 1 {
		return fmt.Errorf("classes must be [0 1], got %v", a.Classes)
	}

	if len(a.FeatureNames) == 0 {
		return fmt.Errorf("feature_names is empty")
	}
	seen := make(map[string]bool, len(a.FeatureNames))
	for _, name := range a.FeatureNames {
		if seen[name] {
			return fmt.Errorf("duplicate feature name %q", name)
		}
		seen[name] = true
	}

	for name, enc := range a.Categorical {
		if !seen[name] {
			return fmt.Errorf("categorical encoding for unknown feature %q", name)
		}
		if len(enc.Categories) == 0 {
			return fmt.Errorf("categorical encoding for %q has no categories", name)
		}
	}

	if len(a.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}
	for i, tree := range a.Trees {
		if err := tree.validate(len(a.FeatureNames), len(a.Classes)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

func (t Tree) validate(featureCount, classCount int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, node := range t.Nodes {
		if node.IsLeaf() {
			if len(node.Value) != classCount {
				return fmt.Errorf("leaf %d has %d class weights, want %d", i, len(node.Value), classCount)
			}
			total := 0.0
			for _, w := range node.Value {
				if w < 0 {
					return fmt.Errorf("leaf %d has negative class weight", i)
				}
				total += w
			}
			if total <= 0 {
				return fmt.Errorf("leaf %d has zero total weight", i)
			}
			continue
		}
		if node.Feature < 0 || node.Feature >= featureCount {
			return fmt.Errorf("node %d splits on feature %d, out of range", i, node.Feature)
		}
		// children always follow their parent, so every walk terminates
		if node.Left <= i || node.Left >= len(t.Nodes) || node.Right <= i || node.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children (%d, %d)", i, node.Left, node.Right)
		}
	}
	return nil
}
