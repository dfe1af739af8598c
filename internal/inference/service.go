package inference

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/concrete-strength/internal/regression"
	"github.com/RMahshie/concrete-strength/pkg/models"
)

// PredictionService runs the loaded model for one feature record at a time
type PredictionService interface {
	Predict(ctx context.Context, record models.FeatureRecord) (*models.Prediction, error)
	Model() models.ModelInfo
}

type predictionService struct {
	model  regression.Model
	source string
	now    func() time.Time
}

// NewPredictionService wraps a loaded model. source names where the artifact came from.
func NewPredictionService(model regression.Model, source string) PredictionService {
	return &predictionService{
		model:  model,
		source: source,
		now:    time.Now,
	}
}

func (s *predictionService) Predict(ctx context.Context, record models.FeatureRecord) (*models.Prediction, error) {
	id := uuid.New().String()

	value, err := s.model.Predict(record)
	if err != nil {
		log.Error().Err(err).Str("predictionID", id).Msg("Prediction failed")
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	log.Info().
		Str("predictionID", id).
		Str("modelKind", s.model.Kind()).
		Float64("value", value).
		Msg("Prediction completed")

	return &models.Prediction{
		ID:        id,
		Value:     value,
		Unit:      models.UnitMPa,
		Message:   Sentence(value),
		Features:  record,
		ModelKind: s.model.Kind(),
		CreatedAt: s.now(),
	}, nil
}

func (s *predictionService) Model() models.ModelInfo {
	return models.ModelInfo{
		Kind:         s.model.Kind(),
		FeatureNames: s.model.FeatureNames(),
		Source:       s.source,
	}
}

// FormatValue prints the raw model output with no rounding
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Sentence renders the result line shown to the user
func Sentence(v float64) string {
	return "Based on feature values, your compressive strength is " + FormatValue(v) + models.UnitMPa
}
