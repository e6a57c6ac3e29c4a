package calculateaptitudescore

import (
	"numerology-workers/internal/common/validation"
	"numerology-workers/internal/profiles"
)

// Vibration fields accept any JSON value; an unreadable one falls back to 1.
var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string"},
		"userProfile": ` + profiles.ProfileSchema + `,
		"profession": {
			"type": ["object", "null"],
			"properties": {
				"name": {"type": "string"},
				"profession_vibration": {}
			}
		},
		"profession_vibration": {}
	}
}`)

var outputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"calculated_score": {"type": "integer", "minimum": 0, "maximum": 100, "multipleOf": 5},
		"reasons": {"type": "array", "items": {"type": "string"}},
		"profession_vibration": {"type": "integer"},
		"vibration_defaulted": {"type": "boolean"},
		"suggestions": {
			"type": "object",
			"properties": {
				"needed": {"type": "boolean"},
				"ideal_vibration": {"type": "integer"},
				"max_possible_score": {"type": "integer"}
			},
			"required": ["needed", "ideal_vibration", "max_possible_score"]
		},
		"profession": {"type": "string"},
		"evaluation_id": {"type": "string"}
	},
	"required": ["calculated_score", "reasons", "profession_vibration", "suggestions"]
}`)

// InputSchema is the contract for the job variables this worker reads.
func InputSchema() *validation.Schema { return inputSchema }

// OutputSchema is the contract for the variables this worker completes with.
func OutputSchema() *validation.Schema { return outputSchema }
