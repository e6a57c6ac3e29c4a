package numerology

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVibration(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		want   int
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"int", 7, 7, true},
		{"int needing reduction", 25, 7, true},
		{"int reducing to master", 38, 11, true},
		{"int64", int64(22), 22, true},
		{"int32", int32(16), 7, true},
		{"zero", 0, 0, false},
		{"negative", -3, 0, false},
		{"float64 from JSON", float64(4), 4, true},
		{"fractional float truncates", 4.9, 4, true},
		{"float32", float32(9), 9, true},
		{"NaN", math.NaN(), 0, false},
		{"infinity", math.Inf(1), 0, false},
		{"json.Number int", json.Number("11"), 11, true},
		{"json.Number float", json.Number("6.5"), 6, true},
		{"json.Number garbage", json.Number("x"), 0, false},
		{"numeric string", "8", 8, true},
		{"string with spaces", "  3 ", 3, true},
		{"string with thousands separator", "1,987", 7, true},
		{"float string", "2.7", 2, true},
		{"empty string", "", 0, false},
		{"word", "seven", 0, false},
		{"bool", true, 0, false},
		{"map", map[string]interface{}{"v": 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVibration(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVibration_FromDecodedJSON(t *testing.T) {
	var vars map[string]interface{}
	err := json.Unmarshal([]byte(`{"profession_vibration": 29}`), &vars)
	assert.NoError(t, err)

	got, ok := ParseVibration(vars["profession_vibration"])
	assert.True(t, ok)
	assert.Equal(t, 11, got)
}
