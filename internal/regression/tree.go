package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/RMahshie/concrete-strength/pkg/models"
)

// TreeNode is one node of a flattened regression tree.
// Children always sit after their parent, so a walk from the root terminates.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

// TreeModel walks a binary tree: x[feature] <= threshold goes left
type TreeModel struct {
	names []string
	nodes []TreeNode
}

// NewTreeModel validates the node layout and returns the model
func NewTreeModel(names []string, nodes []TreeNode) (*TreeModel, error) {
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	for i, n := range nodes {
		if n.Leaf {
			if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
				return nil, fmt.Errorf("node %d: leaf value is not finite", i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= len(names) {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		if math.IsNaN(n.Threshold) {
			return nil, fmt.Errorf("node %d: threshold is NaN", i)
		}
		if n.Left <= i || n.Left >= len(nodes) || n.Right <= i || n.Right >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return &TreeModel{
		names: append([]string(nil), names...),
		nodes: append([]TreeNode(nil), nodes...),
	}, nil
}

func (m *TreeModel) Predict(record models.FeatureRecord) (float64, error) {
	x, err := vectorize(m.names, record)
	if err != nil {
		return 0, err
	}
	idx := 0
	for {
		node := m.nodes[idx]
		if node.Leaf {
			return node.Value, nil
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

func (m *TreeModel) Kind() string { return KindTree }

func (m *TreeModel) FeatureNames() []string {
	return append([]string(nil), m.names...)
}
