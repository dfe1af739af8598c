package inference

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/concrete-strength/internal/regression"
	"github.com/RMahshie/concrete-strength/pkg/models"
)

// MockModel implements regression.Model for testing
type MockModel struct {
	mock.Mock
}

func (m *MockModel) Predict(record models.FeatureRecord) (float64, error) {
	args := m.Called(record)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockModel) Kind() string {
	return regression.KindLinear
}

func (m *MockModel) FeatureNames() []string {
	return []string{models.KeyCement, models.KeyAge}
}

func TestPredict_DefaultRecord(t *testing.T) {
	record := models.DefaultRecord()

	model := &MockModel{}
	model.On("Predict", record).Return(36.348427, nil).Once()

	svc := NewPredictionService(model, "saved_model")
	got, err := svc.Predict(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, 36.348427, got.Value)
	assert.Equal(t, "MPa", got.Unit)
	assert.Equal(t, "Based on feature values, your compressive strength is 36.348427MPa", got.Message)
	assert.Equal(t, record, got.Features)
	assert.Equal(t, regression.KindLinear, got.ModelKind)
	assert.False(t, got.CreatedAt.IsZero())
	_, err = uuid.Parse(got.ID)
	assert.NoError(t, err)

	model.AssertExpectations(t)
	model.AssertNumberOfCalls(t, "Predict", 1)
}

func TestPredict_ModelFailure(t *testing.T) {
	model := &MockModel{}
	model.On("Predict", mock.Anything).Return(0.0, regression.ErrMissingFeature)

	svc := NewPredictionService(model, "saved_model")
	got, err := svc.Predict(context.Background(), models.DefaultRecord())

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, regression.ErrMissingFeature)
	model.AssertNumberOfCalls(t, "Predict", 1)
}

func TestPredict_Idempotent(t *testing.T) {
	model, err := regression.Decode([]byte(`{
		"kind": "linear_regression",
		"feature_names": ["Cement", "Water", "Age"],
		"coefficients": [0.11, -0.17, 0.09],
		"intercept": 4.2
	}`))
	require.NoError(t, err)

	svc := NewPredictionService(model, "inline")
	first, err := svc.Predict(context.Background(), models.DefaultRecord())
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), models.DefaultRecord())
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.Message, second.Message)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestModelInfo(t *testing.T) {
	svc := NewPredictionService(&MockModel{}, "s3://models/saved_model")
	info := svc.Model()

	assert.Equal(t, regression.KindLinear, info.Kind)
	assert.Equal(t, []string{"Cement", "Age"}, info.FeatureNames)
	assert.Equal(t, "s3://models/saved_model", info.Source)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{36.348427, "36.348427"},
		{30, "30"},
		{-1.5, "-1.5"},
		{1.0 / 3, "0.3333333333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
