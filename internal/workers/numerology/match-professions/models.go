package matchprofessions

import "numerology-workers/internal/profiles"

const maxLimit = 100

type Input struct {
	UserID      string                 `json:"userId,omitempty"`
	UserProfile *profiles.ProfileInput `json:"userProfile,omitempty"`
	Category    string                 `json:"category,omitempty"`
	Keywords    string                 `json:"keywords,omitempty"`
	MinScore    int                    `json:"minScore,omitempty"`
	Limit       int                    `json:"limit,omitempty"`
}

// Match is one scored profession.
type Match struct {
	ID                  string   `json:"id,omitempty"`
	Name                string   `json:"name"`
	Category            string   `json:"category,omitempty"`
	ProfessionVibration int      `json:"profession_vibration"`
	VibrationDefaulted  bool     `json:"vibration_defaulted"`
	CalculatedScore     int      `json:"calculated_score"`
	Reasons             []string `json:"reasons"`
}

type Output struct {
	Matches          []Match `json:"matches"`
	TotalCandidates  int     `json:"total_candidates"`
	TotalMatched     int     `json:"total_matched"`
	IdealVibration   int     `json:"ideal_vibration"`
	MaxPossibleScore int     `json:"max_possible_score"`
}
