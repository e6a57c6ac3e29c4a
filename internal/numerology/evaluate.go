package numerology

import "errors"

var (
	// ErrProfileMissing is returned when no profile was supplied at all.
	ErrProfileMissing = errors.New("numerology profile is required")
	// ErrProfileIncomplete is returned when a profile dimension reduces to zero.
	ErrProfileIncomplete = errors.New("numerology profile has an empty dimension")
)

// Reason strings, appended in Expression, Destiny, Path order.
const (
	ReasonExpressionExact       = "Vibration matches your Expression number exactly"
	ReasonExpressionFavorable   = "Vibration is in harmony with your Expression number"
	ReasonExpressionUnfavorable = "Vibration clashes with your Expression number"
	ReasonDestinyExact          = "Vibration matches your Destiny number exactly"
	ReasonDestinyFavorable      = "Vibration supports your Destiny number"
	ReasonDestinyUnfavorable    = "Vibration works against your Destiny number"
	ReasonPathExact             = "Vibration matches your Life Path number exactly"
	ReasonPathFavorable         = "Vibration shares the rhythm of your Life Path number"
)

// Profile holds a person's three numerology numbers.
type Profile struct {
	Expression int `json:"expression"`
	Destiny    int `json:"destiny"`
	Path       int `json:"path"`
}

// Reduced returns p with every dimension reduced to its canonical number.
func (p Profile) Reduced() Profile {
	return Profile{
		Expression: Reduce(p.Expression),
		Destiny:    Reduce(p.Destiny),
		Path:       Reduce(p.Path),
	}
}

// Validate reports ErrProfileIncomplete when any reduced dimension is absent.
func (p Profile) Validate() error {
	r := p.Reduced()
	if r.Expression == absentVibration || r.Destiny == absentVibration || r.Path == absentVibration {
		return ErrProfileIncomplete
	}
	return nil
}

// Candidate is the entity being matched against a profile, e.g. a profession.
type Candidate struct {
	Name      string
	Vibration interface{}
}

// Suggestions tells the caller whether a better vibration exists and which one.
type Suggestions struct {
	Needed           bool `json:"needed"`
	IdealVibration   int  `json:"ideal_vibration"`
	MaxPossibleScore int  `json:"max_possible_score"`
}

// Evaluation is the full result of scoring one candidate.
type Evaluation struct {
	Candidate   string      `json:"candidate,omitempty"`
	Profile     Profile     `json:"profile"`
	Vibration   int         `json:"profession_vibration"`
	Defaulted   bool        `json:"vibration_defaulted"`
	Score       int         `json:"calculated_score"`
	Reasons     []string    `json:"reasons"`
	Breakdown   Breakdown   `json:"breakdown"`
	Suggestions Suggestions `json:"suggestions"`
}

// Evaluate scores candidate against profile and searches for the best achievable match.
// A nil profile fails; an unreadable candidate vibration falls back to 1.
func Evaluate(profile *Profile, candidate Candidate) (*Evaluation, error) {
	if profile == nil {
		return nil, ErrProfileMissing
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	p := profile.Reduced()

	vibration, ok := ParseVibration(candidate.Vibration)
	if !ok {
		vibration = defaultVibration
	}

	breakdown := ScoreBreakdown(vibration, p.Expression, p.Destiny, p.Path)
	best := BestMatch(p)

	return &Evaluation{
		Candidate: candidate.Name,
		Profile:   p,
		Vibration: vibration,
		Defaulted: !ok,
		Score:     breakdown.Score,
		Reasons:   reasons(breakdown),
		Breakdown: breakdown,
		Suggestions: Suggestions{
			Needed:           breakdown.Score < SuggestionCutoff,
			IdealVibration:   best.IdealVibration,
			MaxPossibleScore: best.MaxPossibleScore,
		},
	}, nil
}

func reasons(b Breakdown) []string {
	out := make([]string, 0, 3)
	switch b.Expression.Relation {
	case RelationExact:
		out = append(out, ReasonExpressionExact)
	case RelationFavorable:
		out = append(out, ReasonExpressionFavorable)
	case RelationUnfavorable:
		out = append(out, ReasonExpressionUnfavorable)
	}
	switch b.Destiny.Relation {
	case RelationExact:
		out = append(out, ReasonDestinyExact)
	case RelationFavorable:
		out = append(out, ReasonDestinyFavorable)
	case RelationUnfavorable:
		out = append(out, ReasonDestinyUnfavorable)
	}
	switch b.Path.Relation {
	case RelationExact:
		out = append(out, ReasonPathExact)
	case RelationFavorable:
		out = append(out, ReasonPathFavorable)
	}
	return out
}
