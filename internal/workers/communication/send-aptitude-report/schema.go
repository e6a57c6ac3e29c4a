package sendaptitudereport

import "numerology-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string"},
		"name": {"type": "string", "maxLength": 200},
		"email": {"type": "string", "maxLength": 320},
		"phone": {"type": "string", "maxLength": 32},
		"profession": {"type": "string"},
		"profession_vibration": {"type": "integer"},
		"calculated_score": {"type": "integer", "minimum": 0, "maximum": 100},
		"reasons": {"type": "array", "items": {"type": "string"}},
		"suggestions": {
			"type": ["object", "null"],
			"properties": {
				"needed": {"type": "boolean"},
				"ideal_vibration": {"type": "integer"},
				"max_possible_score": {"type": "integer"}
			}
		}
	},
	"required": ["calculated_score"]
}`)

var outputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"reportId": {"type": "string", "minLength": 1},
		"status": {"type": "string", "enum": ["sent", "failed", "disabled"]},
		"channels": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"channel": {"type": "string", "enum": ["email", "sms"]},
					"status": {"type": "string", "enum": ["sent", "failed"]},
					"messageId": {"type": "string"},
					"error": {"type": "string"}
				},
				"required": ["channel", "status"]
			}
		},
		"sentAt": {"type": "string", "format": "date-time"}
	},
	"required": ["reportId", "status", "channels", "sentAt"]
}`)

func InputSchema() *validation.Schema { return inputSchema }

func OutputSchema() *validation.Schema { return outputSchema }
