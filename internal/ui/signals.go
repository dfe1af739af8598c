package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/RMahshie/concrete-strength/pkg/models"
)

// SliderValue accepts a JSON number or a numeric string; range inputs may send either
type SliderValue float64

func (v *SliderValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("slider value %q is not a number", s)
		}
		*v = SliderValue(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = SliderValue(f)
	return nil
}

// FormSignals is the slider state the browser sends with every interaction
type FormSignals struct {
	Cement           SliderValue `json:"cement"`
	BlastFurnaceSlag SliderValue `json:"blastFurnaceSlag"`
	FlyAsh           SliderValue `json:"flyAsh"`
	Water            SliderValue `json:"water"`
	Superplasticizer SliderValue `json:"superplasticizer"`
	CoarseAggregate  SliderValue `json:"coarseAggregate"`
	FineAggregate    SliderValue `json:"fineAggregate"`
	Age              SliderValue `json:"age"`
}

// SignalsFor returns the signals matching a record
func SignalsFor(r models.FeatureRecord) FormSignals {
	return FormSignals{
		Cement:           SliderValue(r.Cement),
		BlastFurnaceSlag: SliderValue(r.BlastFurnaceSlag),
		FlyAsh:           SliderValue(r.FlyAsh),
		Water:            SliderValue(r.Water),
		Superplasticizer: SliderValue(r.Superplasticizer),
		CoarseAggregate:  SliderValue(r.CoarseAggregate),
		FineAggregate:    SliderValue(r.FineAggregate),
		Age:              SliderValue(r.Age),
	}
}

// Record assembles the feature record, pinned to the slider bounds
func (s FormSignals) Record() models.FeatureRecord {
	return models.FeatureRecord{
		Cement:           float64(s.Cement),
		BlastFurnaceSlag: float64(s.BlastFurnaceSlag),
		FlyAsh:           float64(s.FlyAsh),
		Water:            float64(s.Water),
		Superplasticizer: float64(s.Superplasticizer),
		CoarseAggregate:  float64(s.CoarseAggregate),
		FineAggregate:    float64(s.FineAggregate),
		Age:              float64(s.Age),
	}.Clamp()
}
