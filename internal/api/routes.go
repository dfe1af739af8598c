package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/concrete-strength/internal/api/handlers"
	"github.com/RMahshie/concrete-strength/internal/inference"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, svc inference.PredictionService) {
	predictionHandler := handlers.NewPredictionHandler(svc)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, predictionHandler.Health)

	huma.Register(api, huma.Operation{
		OperationID: "listFeatures",
		Method:      http.MethodGet,
		Path:        "/api/features",
		Summary:     "List input features",
		Description: "Returns the bounded numeric inputs with their ranges, defaults and steps",
		Tags:        []string{"Prediction"},
	}, predictionHandler.ListFeatures)

	huma.Register(api, huma.Operation{
		OperationID: "getModel",
		Method:      http.MethodGet,
		Path:        "/api/model",
		Summary:     "Get model metadata",
		Description: "Returns the kind and input columns of the loaded model",
		Tags:        []string{"Prediction"},
	}, predictionHandler.GetModel)

	huma.Register(api, huma.Operation{
		OperationID:   "createPrediction",
		Method:        http.MethodPost,
		Path:          "/api/predictions",
		Summary:       "Predict compressive strength",
		Description:   "Runs the loaded model on one feature record and returns the predicted strength in MPa",
		Tags:          []string{"Prediction"},
		DefaultStatus: http.StatusOK,
	}, predictionHandler.CreatePrediction)
}
