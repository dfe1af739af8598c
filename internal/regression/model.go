// Package regression loads trained regression artifacts and runs single-row predictions.
package regression

import (
	"errors"
	"fmt"

	"github.com/RMahshie/concrete-strength/pkg/models"
)

// Model kinds understood by Decode
const (
	KindLinear = "linear_regression"
	KindTree   = "decision_tree_regressor"
)

// ErrMissingFeature is returned when a record lacks a column the model was trained on
var ErrMissingFeature = errors.New("missing feature")

// Model is an immutable trained regressor
type Model interface {
	Predict(record models.FeatureRecord) (float64, error)
	Kind() string
	FeatureNames() []string
}

// vectorize pulls the model's columns out of the record in the model's order
func vectorize(names []string, record models.FeatureRecord) ([]float64, error) {
	x := make([]float64, len(names))
	for i, name := range names {
		v, ok := record.Value(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingFeature, name)
		}
		x[i] = v
	}
	return x, nil
}
