package regression

import (
	"github.com/RMahshie/concrete-strength/pkg/models"
)

// LinearModel predicts intercept + sum(coefficient * feature)
type LinearModel struct {
	names        []string
	coefficients []float64
	intercept    float64
}

// NewLinearModel copies its inputs so the model cannot be changed after construction
func NewLinearModel(names []string, coefficients []float64, intercept float64) *LinearModel {
	return &LinearModel{
		names:        append([]string(nil), names...),
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
	}
}

func (m *LinearModel) Predict(record models.FeatureRecord) (float64, error) {
	x, err := vectorize(m.names, record)
	if err != nil {
		return 0, err
	}
	y := m.intercept
	for i, c := range m.coefficients {
		y += c * x[i]
	}
	return y, nil
}

func (m *LinearModel) Kind() string { return KindLinear }

func (m *LinearModel) FeatureNames() []string {
	return append([]string(nil), m.names...)
}
