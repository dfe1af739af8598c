package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/concrete-strength/pkg/models"
)

// MockPredictionService implements inference.PredictionService for testing
type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) Predict(ctx context.Context, record models.FeatureRecord) (*models.Prediction, error) {
	args := m.Called(ctx, record)
	p, _ := args.Get(0).(*models.Prediction)
	return p, args.Error(1)
}

func (m *MockPredictionService) Model() models.ModelInfo {
	return models.ModelInfo{
		Kind:         "linear_regression",
		FeatureNames: []string{"Cement", "Age"},
		Source:       "saved_model",
	}
}

func defaultInput() models.FeatureInput {
	return models.FeatureInput{
		Cement:           300,
		BlastFurnaceSlag: 100,
		FlyAsh:           50,
		Water:            200,
		Superplasticizer: 10,
		CoarseAggregate:  900,
		FineAggregate:    700,
		Age:              30,
	}
}

func TestCreatePrediction(t *testing.T) {
	tests := []struct {
		name      string
		input     models.FeatureInput
		mockSetup func(*MockPredictionService)
		wantError bool
	}{
		{
			name:  "default record",
			input: defaultInput(),
			mockSetup: func(svc *MockPredictionService) {
				svc.On("Predict", mock.Anything, models.DefaultRecord()).Return(&models.Prediction{
					ID:      "a5f1",
					Value:   36.5,
					Unit:    models.UnitMPa,
					Message: "Based on feature values, your compressive strength is 36.5MPa",
				}, nil).Once()
			},
		},
		{
			name: "value out of range",
			input: func() models.FeatureInput {
				in := defaultInput()
				in.Age = 400
				return in
			}(),
			mockSetup: func(svc *MockPredictionService) {
				// No mocks needed since validation happens before the model is called
			},
			wantError: true,
		},
		{
			name: "value between slider steps",
			input: func() models.FeatureInput {
				in := defaultInput()
				in.Cement = 300.5
				return in
			}(),
			mockSetup: func(svc *MockPredictionService) {},
			wantError: true,
		},
		{
			name:  "model failure",
			input: defaultInput(),
			mockSetup: func(svc *MockPredictionService) {
				svc.On("Predict", mock.Anything, mock.Anything).Return(nil, assert.AnError)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPredictionService{}
			tt.mockSetup(svc)

			handler := NewPredictionHandler(svc)
			resp, err := handler.CreatePrediction(context.Background(), &models.CreatePredictionRequest{Body: tt.input})

			if tt.wantError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 36.5, resp.Body.Value)
				assert.Contains(t, resp.Body.Message, "MPa")
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestCreatePrediction_ErrorStatus(t *testing.T) {
	svc := &MockPredictionService{}
	svc.On("Predict", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := NewPredictionHandler(svc).CreatePrediction(context.Background(), &models.CreatePredictionRequest{Body: defaultInput()})

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.GetStatus())
}

func TestHealth(t *testing.T) {
	resp, err := NewPredictionHandler(&MockPredictionService{}).Health(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "healthy", resp.Body.Status)
	assert.Equal(t, Version, resp.Body.Version)
	assert.Equal(t, "linear_regression", resp.Body.ModelKind)
	assert.WithinDuration(t, time.Now(), resp.Body.Time, time.Minute)
}

func TestListFeatures(t *testing.T) {
	resp, err := NewPredictionHandler(&MockPredictionService{}).ListFeatures(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.Fields(), resp.Body.Features)
}

func TestGetModel(t *testing.T) {
	resp, err := NewPredictionHandler(&MockPredictionService{}).GetModel(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "linear_regression", resp.Body.Kind)
	assert.Equal(t, []string{"Cement", "Age"}, resp.Body.FeatureNames)
	assert.Equal(t, "saved_model", resp.Body.Source)
}

func TestCreatePrediction_HTTP(t *testing.T) {
	svc := &MockPredictionService{}
	svc.On("Predict", mock.Anything, models.DefaultRecord()).Return(&models.Prediction{
		Value:   41.25,
		Unit:    models.UnitMPa,
		Message: "Based on feature values, your compressive strength is 41.25MPa",
	}, nil).Once()
	handler := NewPredictionHandler(svc)

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID:   "createPrediction",
		Method:        http.MethodPost,
		Path:          "/api/predictions",
		DefaultStatus: http.StatusOK,
	}, handler.CreatePrediction)

	t.Run("default record", func(t *testing.T) {
		resp := api.Post("/api/predictions", defaultInput())
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		var body models.Prediction
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, 41.25, body.Value)
		assert.Equal(t, "MPa", body.Unit)
	})

	t.Run("out of range is rejected", func(t *testing.T) {
		in := defaultInput()
		in.Cement = 10
		resp := api.Post("/api/predictions", in)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("value between steps is rejected", func(t *testing.T) {
		in := defaultInput()
		in.Cement = 300.5
		resp := api.Post("/api/predictions", in)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())
	})

	svc.AssertExpectations(t)
}
