// Package cli provides the one-shot prediction command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/RMahshie/concrete-strength/internal/inference"
	"github.com/RMahshie/concrete-strength/internal/regression"
	"github.com/RMahshie/concrete-strength/pkg/models"
)

// PredictOptions holds options for the predict command.
type PredictOptions struct {
	ModelPath string
	Format    string
	Values    map[string]*float64
}

// NewPredictCommand creates the predict command.
func NewPredictCommand() *cobra.Command {
	opts := &PredictOptions{Values: make(map[string]*float64)}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict concrete compressive strength for one mix",
		Long: `Load the trained model and run it once on a single concrete mix.

Every feature has a flag; unset flags keep the form's default. Values are
pinned to the same ranges and steps as the web form sliders.`,
		Example: `  # Defaults for every feature
  predict

  # A richer, older mix
  predict --cement 450 --age 90 --model ./saved_model

  # Machine-readable output
  predict --format json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ModelPath, "model", "m", "saved_model", "Path to the trained model artifact")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json")
	bindFeatureFlags(cmd.Flags(), opts.Values)

	return cmd
}

func bindFeatureFlags(fs *pflag.FlagSet, values map[string]*float64) {
	for _, f := range models.Fields() {
		v := new(float64)
		values[f.Key] = v
		fs.Float64Var(v, FlagName(f), f.Default, fmt.Sprintf("%s [%g..%g]", f.Label, f.Min, f.Max))
	}
}

// FlagName turns a signal name like blastFurnaceSlag into blast-furnace-slag.
func FlagName(f models.FeatureField) string {
	var b strings.Builder
	for i, r := range f.Signal {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func runPredict(cmd *cobra.Command, opts *PredictOptions) error {
	record := models.DefaultRecord()
	for key, v := range opts.Values {
		field, ok := models.FieldByKey(key)
		if !ok {
			return fmt.Errorf("unknown feature %q", key)
		}
		if err := record.Set(key, field.Clamp(*v)); err != nil {
			return err
		}
	}

	model, err := regression.Load(cmd.Context(), regression.FileSource{Path: opts.ModelPath})
	if err != nil {
		return err
	}

	svc := inference.NewPredictionService(model, opts.ModelPath)
	prediction, err := svc.Predict(cmd.Context(), record)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(prediction)
	case "table", "":
		renderRecordTable(out, record)
		_, _ = fmt.Fprintln(out, prediction.Message)
		return nil
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func renderRecordTable(w io.Writer, record models.FeatureRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	values := record.Values()
	header := make(table.Row, len(values))
	row := make(table.Row, len(values))
	for i, kv := range values {
		header[i] = kv.Key
		row[i] = inference.FormatValue(kv.Value)
	}
	t.AppendHeader(header)
	t.AppendRow(row)
	t.Render()
}
