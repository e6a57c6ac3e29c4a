package numerology

// Suggestion is the best vibration a profile could be matched with.
type Suggestion struct {
	IdealVibration   int `json:"ideal_vibration"`
	MaxPossibleScore int `json:"max_possible_score"`
}

// VibrationScore pairs a candidate vibration with its score for a profile.
type VibrationScore struct {
	Vibration int `json:"vibration"`
	Score     int `json:"score"`
}

// BestMatch searches the digits 1..9 for the highest score against p. Master numbers are
// only tried when no digit reaches SuggestionCutoff. Ties keep the earliest candidate.
func BestMatch(p Profile) Suggestion {
	best := Suggestion{}
	for v := 1; v <= 9; v++ {
		consider(&best, v, p)
	}
	if best.MaxPossibleScore < SuggestionCutoff {
		consider(&best, MasterEleven, p)
		consider(&best, MasterTwentyTwo, p)
	}
	return best
}

func consider(best *Suggestion, v int, p Profile) {
	s := Score(v, p.Expression, p.Destiny, p.Path)
	if best.IdealVibration == 0 || s > best.MaxPossibleScore {
		best.IdealVibration = v
		best.MaxPossibleScore = s
	}
}

// ScoreAll scores every canonical vibration against p, in Vibrations order.
func ScoreAll(p Profile) []VibrationScore {
	out := make([]VibrationScore, 0, len(Vibrations))
	for _, v := range Vibrations {
		out = append(out, VibrationScore{
			Vibration: v,
			Score:     Score(v, p.Expression, p.Destiny, p.Path),
		})
	}
	return out
}
