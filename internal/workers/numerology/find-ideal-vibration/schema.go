package findidealvibration

import (
	"numerology-workers/internal/common/validation"
	"numerology-workers/internal/profiles"
)

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string"},
		"userProfile": ` + profiles.ProfileSchema + `
	}
}`)

var outputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"ideal_vibration": {"type": "integer", "enum": [1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22]},
		"max_possible_score": {"type": "integer", "minimum": 0, "maximum": 100},
		"profile": {"type": "object"},
		"favorable_vibrations": {"type": "array", "items": {"type": "integer"}},
		"vibration_scores": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"vibration": {"type": "integer"},
					"score": {"type": "integer"}
				},
				"required": ["vibration", "score"]
			}
		}
	},
	"required": ["ideal_vibration", "max_possible_score", "profile"]
}`)

func InputSchema() *validation.Schema { return inputSchema }

func OutputSchema() *validation.Schema { return outputSchema }
