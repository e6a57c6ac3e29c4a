package profiles

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"numerology-workers/internal/numerology"
)

// ProfileInput is the userProfile job variable. Each number may arrive as a JSON
// number or a numeric string; null or absent means 0.
type ProfileInput struct {
	Expression Number `json:"expression"`
	Destiny    Number `json:"destiny"`
	Path       Number `json:"path"`
}

// Profile converts the input to an engine profile.
func (p *ProfileInput) Profile() *numerology.Profile {
	if p == nil {
		return nil
	}
	return &numerology.Profile{
		Expression: int(p.Expression),
		Destiny:    int(p.Destiny),
		Path:       int(p.Path),
	}
}

// Number is a non-negative integer that also decodes from a numeric string.
// Fractions are truncated.
type Number int

func (n *Number) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*n = 0
	case float64:
		if v < 0 {
			return fmt.Errorf("numerology number must not be negative: %v", v)
		}
		i, err := toNumber(v)
		if err != nil {
			return err
		}
		*n = i
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("numerology number %q is not a non-negative number", v)
		}
		i, err := toNumber(f)
		if err != nil {
			return err
		}
		*n = i
	default:
		return fmt.Errorf("numerology number has unsupported type %T", raw)
	}
	return nil
}

func toNumber(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 {
		return 0, fmt.Errorf("numerology number %v is out of range", f)
	}
	return Number(int(f)), nil
}

// ProfileSchema is the JSON schema of the userProfile variable. Worker schemas embed
// it; value checks beyond the type happen when the profile is decoded and validated.
const ProfileSchema = `{
	"type": ["object", "null"],
	"properties": {
		"expression": {"type": ["number", "string", "null"]},
		"destiny": {"type": ["number", "string", "null"]},
		"path": {"type": ["number", "string", "null"]}
	}
}`
