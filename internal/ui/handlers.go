// Package ui serves the slider form that drives single-row predictions.
package ui

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/RMahshie/concrete-strength/internal/inference"
	"github.com/RMahshie/concrete-strength/pkg/models"
)

// Handlers provides HTTP handlers for the prediction form.
type Handlers struct {
	svc inference.PredictionService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc inference.PredictionService) *Handlers {
	return &Handlers{svc: svc}
}

// FormPage renders the page with every slider at its default.
func (h *Handlers) FormPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderPage(w, models.DefaultRecord()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// FormTable re-renders the record table from the submitted slider state.
// The result area is cleared since any earlier prediction no longer matches the sliders.
func (h *Handlers) FormTable(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	signals := SignalsFor(models.DefaultRecord())
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}
	record := signals.Record()

	sse := datastar.NewSSE(w, r)

	table, err := RenderTable(record)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElements(table); err != nil {
		return
	}

	empty, err := RenderResult(nil)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(empty)
}

// Predict runs the model once on the submitted slider state and shows the sentence.
func (h *Handlers) Predict(w http.ResponseWriter, r *http.Request) {
	signals := SignalsFor(models.DefaultRecord())
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}
	record := signals.Record()

	sse := datastar.NewSSE(w, r)

	prediction, err := h.svc.Predict(r.Context(), record)
	if err != nil {
		log.Error().Err(err).Msg("Form prediction failed")
		h.patchError(sse)
		return
	}

	result, err := RenderResult(prediction)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(result)
}

func (h *Handlers) patchError(sse *datastar.ServerSentEventGenerator) {
	html, err := RenderError()
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	_ = sse.PatchElements(html)
}
