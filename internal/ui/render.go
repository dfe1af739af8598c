package ui

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"

	"github.com/RMahshie/concrete-strength/internal/inference"
	"github.com/RMahshie/concrete-strength/pkg/models"
)

const (
	pageTitle = "Concrete Compression Strength Predictor Web App"
	pageIntro = "This is a web app to predict the compressive strength of concrete based on several features " +
		"that you can see in the sidebar. Please adjust the value of each feature. After that, click on the " +
		"Predict button at the bottom to see the prediction of the model."
	genericError = "Something went wrong while computing the prediction."
	datastarJS   = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
)

const templates = `
{{define "page"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script type="module" src="{{.ScriptURL}}"></script>
<style>
body{display:flex;margin:0;font-family:sans-serif}
#sidebar{width:18rem;padding:1rem;background:#f0f2f6;min-height:100vh}
#sidebar label{display:block;margin-top:.8rem;font-size:.9rem}
#sidebar input{width:100%}
main{flex:1;padding:1rem 2rem}
table{border-collapse:collapse}
th,td{border:1px solid #ddd;padding:.3rem .6rem;text-align:right}
.error{color:#b00020}
</style>
</head>
<body data-signals="{{.Signals}}">
<aside id="sidebar">
{{range .Sliders}}<label for="{{.Signal}}">{{.Label}}: <span data-text="${{.Signal}}">{{.Value}}</span></label>
<input type="range" id="{{.Signal}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" data-bind="{{.Signal}}" data-on:change="@get('/form/table')">
{{end}}</aside>
<main>
<h1>{{.Title}}</h1>
<p>{{.Intro}}</p>
{{template "table" .Table}}
<button id="predict" data-on:click="@post('/form/predict')">Predict</button>
{{template "result" .Result}}
</main>
</body>
</html>{{end}}

{{define "table"}}<div id="features-table"><table>
<thead><tr>{{range .}}<th>{{.Key}}</th>{{end}}</tr></thead>
<tbody><tr>{{range .}}<td>{{.Value}}</td>{{end}}</tr></tbody>
</table></div>{{end}}

{{define "result"}}<div id="prediction">{{if .}}{{if .Error}}<p class="error">{{.Error}}</p>{{else}}<p class="result">{{.Message}}</p>{{end}}{{end}}</div>{{end}}
`

var tmpl = template.Must(template.New("ui").Parse(templates))

type sliderView struct {
	Signal, Label  string
	Min, Max, Step string
	Value          string
}

type cellView struct {
	Key, Value string
}

type resultView struct {
	Message string
	Error   string
}

type pageView struct {
	Title     string
	Intro     string
	ScriptURL string
	Signals   string
	Sliders   []sliderView
	Table     []cellView
	Result    *resultView
}

func tableView(record models.FeatureRecord) []cellView {
	cells := make([]cellView, 0, len(models.Fields()))
	for _, kv := range record.Values() {
		cells = append(cells, cellView{Key: kv.Key, Value: inference.FormatValue(kv.Value)})
	}
	return cells
}

// RenderPage writes the full form page for the given slider state
func RenderPage(w io.Writer, record models.FeatureRecord) error {
	signals, err := json.Marshal(SignalsFor(record))
	if err != nil {
		return err
	}

	view := pageView{
		Title:     pageTitle,
		Intro:     pageIntro,
		ScriptURL: datastarJS,
		Signals:   string(signals),
		Table:     tableView(record),
	}
	for _, f := range models.Fields() {
		v, _ := record.Value(f.Key)
		view.Sliders = append(view.Sliders, sliderView{
			Signal: f.Signal,
			Label:  f.Label,
			Min:    inference.FormatValue(f.Min),
			Max:    inference.FormatValue(f.Max),
			Step:   inference.FormatValue(f.Step),
			Value:  inference.FormatValue(v),
		})
	}
	return tmpl.ExecuteTemplate(w, "page", view)
}

// RenderTable renders the one-row view of the current record
func RenderTable(record models.FeatureRecord) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "table", tableView(record)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderResult renders the prediction sentence; a nil prediction renders an empty result area
func RenderResult(p *models.Prediction) (string, error) {
	var view *resultView
	if p != nil {
		view = &resultView{Message: p.Message}
	}
	return renderResult(view)
}

// RenderError renders the generic failure shown in place of a result
func RenderError() (string, error) {
	return renderResult(&resultView{Error: genericError})
}

func renderResult(view *resultView) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "result", view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
