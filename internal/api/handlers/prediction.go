package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/concrete-strength/internal/inference"
	"github.com/RMahshie/concrete-strength/pkg/models"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// PredictionHandler handles prediction-related HTTP requests
type PredictionHandler struct {
	svc inference.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(svc inference.PredictionService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// Health reports that the service is up and which model it serves
func (h *PredictionHandler) Health(ctx context.Context, _ *struct{}) (*models.HealthResponse, error) {
	resp := &models.HealthResponse{}
	resp.Body.Status = "healthy"
	resp.Body.Version = Version
	resp.Body.ModelKind = h.svc.Model().Kind
	resp.Body.Time = time.Now()
	return resp, nil
}

// ListFeatures returns the bounded inputs the model accepts
func (h *PredictionHandler) ListFeatures(ctx context.Context, _ *struct{}) (*models.ListFeaturesResponse, error) {
	resp := &models.ListFeaturesResponse{}
	resp.Body.Features = models.Fields()
	return resp, nil
}

// GetModel returns metadata about the loaded model
func (h *PredictionHandler) GetModel(ctx context.Context, _ *struct{}) (*models.GetModelResponse, error) {
	return &models.GetModelResponse{Body: h.svc.Model()}, nil
}

// CreatePrediction runs the model once on the submitted record
func (h *PredictionHandler) CreatePrediction(ctx context.Context, req *models.CreatePredictionRequest) (*models.CreatePredictionResponse, error) {
	record := req.Body.Record()

	// huma enforces the bounds on the wire; this catches callers that bypass it
	if err := record.Validate(); err != nil {
		return nil, huma.Error422UnprocessableEntity("Feature value out of range", err)
	}

	prediction, err := h.svc.Predict(ctx, record)
	if err != nil {
		log.Error().Err(err).Msg("Prediction request failed")
		return nil, huma.Error500InternalServerError("Failed to compute prediction", err)
	}

	return &models.CreatePredictionResponse{Body: prediction}, nil
}
