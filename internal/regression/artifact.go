package regression

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Artifact is the on-disk form of a trained model
type Artifact struct {
	Kind         string     `json:"kind"`
	FeatureNames []string   `json:"feature_names"`
	Coefficients []float64  `json:"coefficients,omitempty"`
	Intercept    float64    `json:"intercept,omitempty"`
	Nodes        []TreeNode `json:"nodes,omitempty"`
}

// Decode parses and validates a serialized artifact
func Decode(data []byte) (Model, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("corrupt model artifact: %w", err)
	}
	return a.Model()
}

// encode serializes a model back into artifact form
func encode(m Model) ([]byte, error) {
	a := Artifact{Kind: m.Kind(), FeatureNames: m.FeatureNames()}
	switch v := m.(type) {
	case *LinearModel:
		a.Coefficients = append([]float64(nil), v.coefficients...)
		a.Intercept = v.intercept
	case *TreeModel:
		a.Nodes = append([]TreeNode(nil), v.nodes...)
	default:
		return nil, fmt.Errorf("cannot encode model kind %q", m.Kind())
	}
	return json.Marshal(a)
}

// Model builds the regressor described by the artifact
func (a Artifact) Model() (Model, error) {
	if len(a.FeatureNames) == 0 {
		return nil, errors.New("model artifact has no feature names")
	}
	seen := make(map[string]bool, len(a.FeatureNames))
	for _, name := range a.FeatureNames {
		if seen[name] {
			return nil, fmt.Errorf("duplicate feature %q", name)
		}
		seen[name] = true
	}

	switch a.Kind {
	case KindLinear:
		if len(a.Coefficients) != len(a.FeatureNames) {
			return nil, fmt.Errorf("got %d coefficients for %d features", len(a.Coefficients), len(a.FeatureNames))
		}
		for i, c := range a.Coefficients {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("coefficient %d is not finite", i)
			}
		}
		if math.IsNaN(a.Intercept) || math.IsInf(a.Intercept, 0) {
			return nil, errors.New("intercept is not finite")
		}
		return NewLinearModel(a.FeatureNames, a.Coefficients, a.Intercept), nil
	case KindTree:
		return NewTreeModel(a.FeatureNames, a.Nodes)
	case "":
		return nil, errors.New("model artifact has no kind")
	default:
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}
}
