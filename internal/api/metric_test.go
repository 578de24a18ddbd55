package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricValueUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *float64
		wantErr bool
	}{
		{"number", `72.5`, floatRef(72.5), false},
		{"integer number", `80`, floatRef(80), false},
		{"decimal string", `"72.5"`, floatRef(72.5), false},
		{"integer string", `"80"`, floatRef(80), false},
		{"string with whitespace", `"  72.5  "`, floatRef(72.5), false},
		{"null", `null`, nil, false},
		{"empty string", `""`, nil, false},
		{"blank string", `"   "`, nil, false},
		{"garbage string", `"heavy"`, nil, true},
		{"boolean", `true`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v MetricValue
			err := json.Unmarshal([]byte(tt.input), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, v.Float())
			} else {
				require.NotNil(t, v.Float())
				assert.Equal(t, *tt.want, *v.Float())
			}
		})
	}
}

func TestMeasurementRequestAcceptsBothMetricEncodings(t *testing.T) {
	payload := []byte(`{
		"weightKg": "72.5",
		"bodyFatPct": 18.2,
		"waistCm": null,
		"notes": "morning weigh-in"
	}`)

	var req MeasurementRequest
	require.NoError(t, json.Unmarshal(payload, &req))

	m := measurementFromRequest(&req)
	require.NotNil(t, m.WeightKg)
	assert.Equal(t, 72.5, *m.WeightKg)
	require.NotNil(t, m.BodyFatPct)
	assert.Equal(t, 18.2, *m.BodyFatPct)
	assert.Nil(t, m.WaistCm)
	assert.Nil(t, m.ChestCm, "absent fields stay unset")
	assert.Equal(t, "morning weigh-in", m.Notes)
}

func floatRef(v float64) *float64 { return &v }
