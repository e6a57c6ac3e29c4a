package numerology

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseVibration turns an upstream classification into a canonical vibration. It accepts
// Go integers, JSON numbers and numeric strings; fractional values are truncated. The
// second result is false when raw is absent, not numeric, or reduces to nothing.
func ParseVibration(raw interface{}) (int, bool) {
	n, ok := toInt(raw)
	if !ok || n <= 0 {
		return 0, false
	}
	v := Reduce(n)
	return v, v != absentVibration
}

func toInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		return stringToInt(v)
	default:
		return 0, false
	}
}

func stringToInt(s string) (int, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(cleaned); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
