package findidealvibration

import (
	"numerology-workers/internal/numerology"
	"numerology-workers/internal/profiles"
)

type Input struct {
	UserID      string                 `json:"userId,omitempty"`
	UserProfile *profiles.ProfileInput `json:"userProfile,omitempty"`
}

type Output struct {
	IdealVibration   int                         `json:"ideal_vibration"`
	MaxPossibleScore int                         `json:"max_possible_score"`
	Profile          numerology.Profile          `json:"profile"`
	Favorable        []int                       `json:"favorable_vibrations"`
	VibrationScores  []numerology.VibrationScore `json:"vibration_scores,omitempty"`
}
