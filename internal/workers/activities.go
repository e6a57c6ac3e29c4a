// Package workers lists the task types this service implements.
package workers

import (
	"encoding/json"
	"time"

	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/errors"
	"numerology-workers/internal/common/validation"
	sendaptitudereport "numerology-workers/internal/workers/communication/send-aptitude-report"
	calculateaptitudescore "numerology-workers/internal/workers/numerology/calculate-aptitude-score"
	findidealvibration "numerology-workers/internal/workers/numerology/find-ideal-vibration"
	matchprofessions "numerology-workers/internal/workers/numerology/match-professions"
	"numerology-workers/pkg/registry"
)

type descriptor struct {
	taskType    string
	displayName string
	description string
	category    string
	input       *validation.Schema
	output      *validation.Schema
	errorCodes  []errors.ErrorCode
	timeout     time.Duration
	tags        []string
}

var profileErrors = []errors.ErrorCode{
	errors.ErrCodeInputParsingFailed,
	errors.ErrCodeValidationFailed,
	errors.ErrCodeProfileMissing,
	errors.ErrCodeProfileIncomplete,
	errors.ErrCodeProfileLookupFailed,
}

var descriptors = []descriptor{
	{
		taskType:    calculateaptitudescore.TaskType,
		displayName: "Calculate Aptitude Score",
		description: "Scores one profession vibration against the user's expression, destiny and life path numbers",
		category:    "numerology",
		input:       calculateaptitudescore.InputSchema(),
		output:      calculateaptitudescore.OutputSchema(),
		errorCodes:  profileErrors,
		timeout:     calculateaptitudescore.DefaultConfig().Timeout,
		tags:        []string{"numerology", "scoring"},
	},
	{
		taskType:    findidealvibration.TaskType,
		displayName: "Find Ideal Vibration",
		description: "Finds the profession vibration with the highest achievable score for a profile",
		category:    "numerology",
		input:       findidealvibration.InputSchema(),
		output:      findidealvibration.OutputSchema(),
		errorCodes:  profileErrors,
		timeout:     findidealvibration.DefaultConfig().Timeout,
		tags:        []string{"numerology", "suggestion"},
	},
	{
		taskType:    matchprofessions.TaskType,
		displayName: "Match Professions",
		description: "Ranks catalogue professions by aptitude score for a profile",
		category:    "numerology",
		input:       matchprofessions.InputSchema(),
		output:      matchprofessions.OutputSchema(),
		errorCodes: append(append([]errors.ErrorCode{}, profileErrors...),
			errors.ErrCodeProfessionSearchFailed,
			errors.ErrCodeProfessionSearchTimeout,
			errors.ErrCodeIndexNotFound,
		),
		timeout: matchprofessions.DefaultConfig().Timeout,
		tags:    []string{"numerology", "search", "elasticsearch"},
	},
	{
		taskType:    sendaptitudereport.TaskType,
		displayName: "Send Aptitude Report",
		description: "Emails and texts the aptitude result to the user",
		category:    "communication",
		input:       sendaptitudereport.InputSchema(),
		output:      sendaptitudereport.OutputSchema(),
		errorCodes: []errors.ErrorCode{
			errors.ErrCodeInputParsingFailed,
			errors.ErrCodeValidationFailed,
			errors.ErrCodeReportRecipientMissing,
			errors.ErrCodeNotificationSendFailed,
		},
		timeout: sendaptitudereport.DefaultConfig().Timeout,
		tags:    []string{"notification", "ses", "sns"},
	},
}

// TaskTypes returns every task type in registration order.
func TaskTypes() []string {
	out := make([]string, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.taskType
	}
	return out
}

// Activities describes every worker for the activity registry. cfg may be nil, in
// which case every worker is reported enabled with its default timeout.
func Activities(cfg *config.Config) []registry.Activity {
	out := make([]registry.Activity, 0, len(descriptors))
	for _, d := range descriptors {
		a := registry.Activity{
			ID:           d.taskType,
			DisplayName:  d.displayName,
			Description:  d.description,
			Category:     d.category,
			Version:      registry.Version,
			TaskType:     d.taskType,
			Enabled:      true,
			InputSchema:  schemaMap(d.input),
			OutputSchema: schemaMap(d.output),
			Timeout:      d.timeout.String(),
			Tags:         d.tags,
		}

		for _, code := range d.errorCodes {
			a.ErrorCodes = append(a.ErrorCodes, string(code))
			if n := errors.GetRetryCount(code); n > a.Retries {
				a.Retries = n
			}
		}

		if cfg != nil {
			if wc, ok := cfg.Workers[d.taskType]; ok {
				a.Enabled = wc.Enabled
				if wc.Timeout > 0 {
					a.Timeout = config.GetDuration(wc.Timeout).String()
				}
			}
		}
		out = append(out, a)
	}
	return out
}

func schemaMap(s *validation.Schema) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal(s.Raw(), &m); err != nil {
		return nil
	}
	return m
}
