package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/concrete-strength/pkg/models"
)

const testArtifact = `{
  "kind": "linear_regression",
  "feature_names": ["Cement", "Blast Furnace Slag", "Fly Ash", "Water", "Superplasticizer", "Coarse Aggregate", "Fine Aggregate", "Age"],
  "coefficients": [0.1, 0.1, 0.1, -0.1, 0.25, 0.01, 0.01, 0.1],
  "intercept": -20
}`

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saved_model")
	require.NoError(t, os.WriteFile(path, []byte(testArtifact), 0o600))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewPredictCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPredict_TableOutput(t *testing.T) {
	out, err := runCommand(t, "--model", writeModel(t))
	require.NoError(t, err)

	for _, key := range []string{"Cement", "Blast Furnace Slag", "Fly Ash", "Water", "Superplasticizer", "Coarse Aggregate", "Fine Aggregate", "Age"} {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "300")
	assert.Contains(t, out, "Based on feature values, your compressive strength is 26.5")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "MPa"))
}

func TestPredict_JSONOutput(t *testing.T) {
	out, err := runCommand(t, "-m", writeModel(t), "-f", "json", "--cement", "400", "--age", "1000")
	require.NoError(t, err)

	var p models.Prediction
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.InDelta(t, 36.5+33.5, p.Value, 1e-9)
	assert.Equal(t, models.UnitMPa, p.Unit)
	assert.Equal(t, 400.0, p.Features.Cement)
	assert.Equal(t, 365.0, p.Features.Age, "age is pinned to the slider maximum")
	assert.NotEmpty(t, p.ID)
}

func TestPredict_SnapsFlagsToSliderSteps(t *testing.T) {
	out, err := runCommand(t, "-m", writeModel(t), "-f", "json", "--cement", "400.6", "--water", "180.4")
	require.NoError(t, err)

	var p models.Prediction
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 401.0, p.Features.Cement)
	assert.Equal(t, 180.0, p.Features.Water)
	assert.NoError(t, p.Features.Validate())
}

func TestPredict_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "missing model",
			args:    func(t *testing.T) []string { return []string{"--model", filepath.Join(t.TempDir(), "saved_model")} },
			wantErr: "failed to read model artifact",
		},
		{
			name:    "unknown format",
			args:    func(t *testing.T) []string { return []string{"--model", writeModel(t), "--format", "yaml"} },
			wantErr: `unknown format "yaml"`,
		},
		{
			name:    "non-numeric feature",
			args:    func(t *testing.T) []string { return []string{"--model", writeModel(t), "--water", "lots"} },
			wantErr: "invalid argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args(t)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFlagName(t *testing.T) {
	names := make([]string, 0, len(models.Fields()))
	for _, f := range models.Fields() {
		names = append(names, FlagName(f))
	}
	assert.Equal(t, []string{
		"cement", "blast-furnace-slag", "fly-ash", "water",
		"superplasticizer", "coarse-aggregate", "fine-aggregate", "age",
	}, names)
}
