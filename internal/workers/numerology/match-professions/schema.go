package matchprofessions

import (
	"numerology-workers/internal/common/validation"
	"numerology-workers/internal/profiles"
)

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string"},
		"userProfile": ` + profiles.ProfileSchema + `,
		"category": {"type": "string", "maxLength": 100},
		"keywords": {"type": "string", "maxLength": 200},
		"minScore": {"type": "integer", "minimum": 0, "maximum": 100},
		"limit": {"type": "integer", "minimum": 1, "maximum": 100}
	}
}`)

var outputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"matches": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"profession_vibration": {"type": "integer"},
					"vibration_defaulted": {"type": "boolean"},
					"calculated_score": {"type": "integer", "minimum": 0, "maximum": 100},
					"reasons": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["name", "profession_vibration", "calculated_score", "reasons"]
			}
		},
		"total_candidates": {"type": "integer", "minimum": 0},
		"total_matched": {"type": "integer", "minimum": 0},
		"ideal_vibration": {"type": "integer"},
		"max_possible_score": {"type": "integer", "minimum": 0, "maximum": 100}
	},
	"required": ["matches", "total_candidates", "total_matched", "ideal_vibration", "max_possible_score"]
}`)

func InputSchema() *validation.Schema { return inputSchema }

func OutputSchema() *validation.Schema { return outputSchema }
