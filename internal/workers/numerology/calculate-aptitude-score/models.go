package calculateaptitudescore

import (
	"numerology-workers/internal/numerology"
	"numerology-workers/internal/profiles"
)

type Input struct {
	UserID      string                 `json:"userId,omitempty"`
	UserProfile *profiles.ProfileInput `json:"userProfile,omitempty"`
	Profession  *Profession            `json:"profession,omitempty"`
	// ProfessionVibration is read when the profession object carries no readable one.
	ProfessionVibration interface{} `json:"profession_vibration,omitempty"`
}

// Profession is the candidate being scored. Its vibration may be an integer, a
// numeric string or missing.
type Profession struct {
	Name      string      `json:"name"`
	Vibration interface{} `json:"profession_vibration"`
}

// Candidate merges the profession object and the top-level vibration. A readable
// nested vibration wins, then a readable top-level one; otherwise whatever was sent
// is passed on and the engine defaults it.
func (in *Input) Candidate() numerology.Candidate {
	c := numerology.Candidate{Vibration: in.ProfessionVibration}
	if in.Profession == nil {
		return c
	}
	c.Name = in.Profession.Name
	nested := in.Profession.Vibration
	if nested == nil {
		return c
	}
	if _, ok := numerology.ParseVibration(nested); ok {
		c.Vibration = nested
		return c
	}
	if _, ok := numerology.ParseVibration(in.ProfessionVibration); !ok {
		c.Vibration = nested
	}
	return c
}

type Output struct {
	CalculatedScore     int                    `json:"calculated_score"`
	Reasons             []string               `json:"reasons"`
	ProfessionVibration int                    `json:"profession_vibration"`
	VibrationDefaulted  bool                   `json:"vibration_defaulted"`
	Suggestions         numerology.Suggestions `json:"suggestions"`
	Profession          string                 `json:"profession,omitempty"`
	EvaluationID        string                 `json:"evaluation_id,omitempty"`
}
