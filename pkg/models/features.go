package models

import (
	"fmt"
	"math"
)

// Feature keys as expected by the trained model's input columns
const (
	KeyCement           = "Cement"
	KeyBlastFurnaceSlag = "Blast Furnace Slag"
	KeyFlyAsh           = "Fly Ash"
	KeyWater            = "Water"
	KeySuperplasticizer = "Superplasticizer"
	KeyCoarseAggregate  = "Coarse Aggregate" // artifacts trained on "Coarse Aggregrate" fail with a missing feature
	KeyFineAggregate    = "Fine Aggregate"
	KeyAge              = "Age"
)

// FeatureField describes one bounded slider input and the record key it feeds
type FeatureField struct {
	Key     string  `json:"key" doc:"Feature key used by the model"`
	Label   string  `json:"label" doc:"Label shown next to the slider"`
	Signal  string  `json:"signal" doc:"Form signal name"`
	Min     float64 `json:"min" doc:"Minimum slider value"`
	Max     float64 `json:"max" doc:"Maximum slider value"`
	Default float64 `json:"default" doc:"Initial slider value"`
	Step    float64 `json:"step" doc:"Slider step size"`
}

// Labels keep the form's "Aggregrate" spelling; keys use "Aggregate".
var featureFields = []FeatureField{
	{Key: KeyCement, Label: "Cement", Signal: "cement", Min: 50, Max: 600, Default: 300, Step: 1},
	{Key: KeyBlastFurnaceSlag, Label: "Blast Furnace Slag", Signal: "blastFurnaceSlag", Min: 0, Max: 400, Default: 100, Step: 1},
	{Key: KeyFlyAsh, Label: "Fly Ash", Signal: "flyAsh", Min: 0, Max: 200, Default: 50, Step: 1},
	{Key: KeyWater, Label: "Water", Signal: "water", Min: 100, Max: 300, Default: 200, Step: 1},
	{Key: KeySuperplasticizer, Label: "Superplasticizer", Signal: "superplasticizer", Min: 0, Max: 50, Default: 10, Step: 1},
	{Key: KeyCoarseAggregate, Label: "Coarse Aggregrate", Signal: "coarseAggregate", Min: 700, Max: 1200, Default: 900, Step: 1},
	{Key: KeyFineAggregate, Label: "Fine Aggregrate", Signal: "fineAggregate", Min: 500, Max: 1000, Default: 700, Step: 1},
	{Key: KeyAge, Label: "Age (days)", Signal: "age", Min: 1, Max: 365, Default: 30, Step: 1},
}

// Fields returns the slider catalogue in display order
func Fields() []FeatureField {
	out := make([]FeatureField, len(featureFields))
	copy(out, featureFields)
	return out
}

// FieldByKey looks up a slider definition by its record key
func FieldByKey(key string) (FeatureField, bool) {
	for _, f := range featureFields {
		if f.Key == key {
			return f, true
		}
	}
	return FeatureField{}, false
}

// Clamp pins v into [Min, Max] and snaps it onto the step grid anchored at Min,
// the same way the range input does in the browser.
func (f FeatureField) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return f.Default
	}
	if v <= f.Min {
		return f.Min
	}
	if v >= f.Max {
		return f.Max
	}
	if f.Step > 0 {
		v = f.Min + math.Round((v-f.Min)/f.Step)*f.Step
		if v > f.Max {
			v = f.Max
		}
	}
	return v
}

// FeatureValue is one key/value pair of a record
type FeatureValue struct {
	Key   string
	Value float64
}

// FeatureRecord holds one concrete mix as eight named values
type FeatureRecord struct {
	Cement           float64 `json:"Cement"`
	BlastFurnaceSlag float64 `json:"Blast Furnace Slag"`
	FlyAsh           float64 `json:"Fly Ash"`
	Water            float64 `json:"Water"`
	Superplasticizer float64 `json:"Superplasticizer"`
	CoarseAggregate  float64 `json:"Coarse Aggregate"`
	FineAggregate    float64 `json:"Fine Aggregate"`
	Age              float64 `json:"Age"`
}

// DefaultRecord returns the record every slider starts at
func DefaultRecord() FeatureRecord {
	var r FeatureRecord
	for _, f := range featureFields {
		*r.slot(f.Key) = f.Default
	}
	return r
}

// MinRecord returns the record with every slider at its minimum
func MinRecord() FeatureRecord {
	var r FeatureRecord
	for _, f := range featureFields {
		*r.slot(f.Key) = f.Min
	}
	return r
}

// MaxRecord returns the record with every slider at its maximum
func MaxRecord() FeatureRecord {
	var r FeatureRecord
	for _, f := range featureFields {
		*r.slot(f.Key) = f.Max
	}
	return r
}

func (r *FeatureRecord) slot(key string) *float64 {
	switch key {
	case KeyCement:
		return &r.Cement
	case KeyBlastFurnaceSlag:
		return &r.BlastFurnaceSlag
	case KeyFlyAsh:
		return &r.FlyAsh
	case KeyWater:
		return &r.Water
	case KeySuperplasticizer:
		return &r.Superplasticizer
	case KeyCoarseAggregate:
		return &r.CoarseAggregate
	case KeyFineAggregate:
		return &r.FineAggregate
	case KeyAge:
		return &r.Age
	}
	return nil
}

// Value returns the value stored under key; ok is false for unknown keys
func (r FeatureRecord) Value(key string) (float64, bool) {
	p := r.slot(key)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Set stores v under key
func (r *FeatureRecord) Set(key string, v float64) error {
	p := r.slot(key)
	if p == nil {
		return fmt.Errorf("unknown feature %q", key)
	}
	*p = v
	return nil
}

// Values returns the record as ordered key/value pairs
func (r FeatureRecord) Values() []FeatureValue {
	out := make([]FeatureValue, 0, len(featureFields))
	for _, f := range featureFields {
		v, _ := r.Value(f.Key)
		out = append(out, FeatureValue{Key: f.Key, Value: v})
	}
	return out
}

// Map returns the record keyed by feature name
func (r FeatureRecord) Map() map[string]float64 {
	out := make(map[string]float64, len(featureFields))
	for _, kv := range r.Values() {
		out[kv.Key] = kv.Value
	}
	return out
}

// Clamp returns a copy with every value pinned to its slider's range and step
func (r FeatureRecord) Clamp() FeatureRecord {
	out := r
	for _, f := range featureFields {
		p := out.slot(f.Key)
		*p = f.Clamp(*p)
	}
	return out
}

// stepTolerance absorbs float error when checking a value against the step grid
const stepTolerance = 1e-9

// OnStep reports whether v lies on the grid Min + k*Step
func (f FeatureField) OnStep(v float64) bool {
	if f.Step <= 0 {
		return true
	}
	k := (v - f.Min) / f.Step
	return math.Abs(k-math.Round(k)) <= stepTolerance
}

// Validate reports the first value that is not finite, falls outside its slider range,
// or sits between two slider steps
func (r FeatureRecord) Validate() error {
	for _, f := range featureFields {
		v, _ := r.Value(f.Key)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: value is not a finite number", f.Key)
		}
		if v < f.Min || v > f.Max {
			return fmt.Errorf("%s: %g outside [%g, %g]", f.Key, v, f.Min, f.Max)
		}
		if !f.OnStep(v) {
			return fmt.Errorf("%s: %g is not a multiple of %g from %g", f.Key, v, f.Step, f.Min)
		}
	}
	return nil
}
