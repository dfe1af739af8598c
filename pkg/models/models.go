package models

import (
	"time"
)

// UnitMPa is the unit predictions are reported in
const UnitMPa = "MPa"

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status    string    `json:"status" example:"healthy" doc:"Service health status"`
		Version   string    `json:"version" example:"1.0.0" doc:"API version"`
		ModelKind string    `json:"model_kind" example:"linear_regression" doc:"Kind of the loaded model"`
		Time      time.Time `json:"time" doc:"Current server time"`
	}
}

// ListFeaturesResponse lists the slider catalogue
type ListFeaturesResponse struct {
	Body struct {
		Features []FeatureField `json:"features" doc:"Bounded numeric inputs in display order"`
	}
}

// ModelInfo describes the loaded model artifact
type ModelInfo struct {
	Kind         string   `json:"kind" doc:"Model kind"`
	FeatureNames []string `json:"feature_names" doc:"Input columns in the order the model reads them"`
	Source       string   `json:"source" doc:"Where the artifact was loaded from"`
}

// GetModelResponse returns the loaded model's metadata
type GetModelResponse struct {
	Body ModelInfo
}

// FeatureInput is the single-row prediction input. Bounds and steps mirror the form sliders.
type FeatureInput struct {
	Cement           float64 `json:"cement" minimum:"50" maximum:"600" default:"300" multipleOf:"1" required:"false" doc:"Cement (kg/m3)"`
	BlastFurnaceSlag float64 `json:"blastFurnaceSlag" minimum:"0" maximum:"400" default:"100" multipleOf:"1" required:"false" doc:"Blast furnace slag (kg/m3)"`
	FlyAsh           float64 `json:"flyAsh" minimum:"0" maximum:"200" default:"50" multipleOf:"1" required:"false" doc:"Fly ash (kg/m3)"`
	Water            float64 `json:"water" minimum:"100" maximum:"300" default:"200" multipleOf:"1" required:"false" doc:"Water (kg/m3)"`
	Superplasticizer float64 `json:"superplasticizer" minimum:"0" maximum:"50" default:"10" multipleOf:"1" required:"false" doc:"Superplasticizer (kg/m3)"`
	CoarseAggregate  float64 `json:"coarseAggregate" minimum:"700" maximum:"1200" default:"900" multipleOf:"1" required:"false" doc:"Coarse aggregate (kg/m3)"`
	FineAggregate    float64 `json:"fineAggregate" minimum:"500" maximum:"1000" default:"700" multipleOf:"1" required:"false" doc:"Fine aggregate (kg/m3)"`
	Age              float64 `json:"age" minimum:"1" maximum:"365" default:"30" multipleOf:"1" required:"false" doc:"Age in days"`
}

// Record converts the input into a feature record
func (in FeatureInput) Record() FeatureRecord {
	return FeatureRecord{
		Cement:           in.Cement,
		BlastFurnaceSlag: in.BlastFurnaceSlag,
		FlyAsh:           in.FlyAsh,
		Water:            in.Water,
		Superplasticizer: in.Superplasticizer,
		CoarseAggregate:  in.CoarseAggregate,
		FineAggregate:    in.FineAggregate,
		Age:              in.Age,
	}
}

// CreatePredictionRequest represents a request for one prediction
type CreatePredictionRequest struct {
	Body FeatureInput
}

// Prediction is the result of running the model on one record
type Prediction struct {
	ID        string        `json:"id" doc:"Prediction identifier"`
	Value     float64       `json:"value" doc:"Predicted compressive strength"`
	Unit      string        `json:"unit" example:"MPa" doc:"Unit of value"`
	Message   string        `json:"message" doc:"Human-readable result sentence"`
	Features  FeatureRecord `json:"features" doc:"Feature record the model was called with"`
	ModelKind string        `json:"model_kind" doc:"Kind of model that produced the value"`
	CreatedAt time.Time     `json:"created_at" doc:"When the prediction was made"`
}

// CreatePredictionResponse returns one prediction
type CreatePredictionResponse struct {
	Body *Prediction
}
