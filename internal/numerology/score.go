package numerology

import "math"

// Points awarded per dimension and match class. The three budgets sum to 100.
const (
	expressionExact       = 50
	expressionFavorable   = 35
	expressionUnfavorable = 10
	expressionNeutral     = 25

	destinyExact       = 30
	destinyFavorable   = 20
	destinyUnfavorable = 5
	destinyNeutral     = 15

	pathExact       = 20
	pathSameParity  = 10
	pathOtherParity = 5

	scoreGranularity = 5
)

const (
	// MaxScore is the ceiling of every compatibility score.
	MaxScore = 100
	// SuggestionCutoff is the score below which a better vibration is suggested.
	SuggestionCutoff = 90
)

// DimensionScore is the outcome for a single profile dimension.
type DimensionScore struct {
	Relation Relation `json:"relation"`
	Points   int      `json:"points"`
}

// Breakdown explains how a score was reached.
type Breakdown struct {
	Expression DimensionScore `json:"expression"`
	Destiny    DimensionScore `json:"destiny"`
	Path       DimensionScore `json:"path"`
	Raw        int            `json:"raw"`
	Score      int            `json:"score"`
}

// Score rates candidate against the user's three numbers. The result is in [0,100] and
// always a multiple of 5.
func Score(candidate, expression, destiny, path int) int {
	return ScoreBreakdown(candidate, expression, destiny, path).Score
}

// ScoreBreakdown is Score with the per-dimension detail kept.
func ScoreBreakdown(candidate, expression, destiny, path int) Breakdown {
	b := Breakdown{
		Expression: scoreExpression(candidate, expression),
		Destiny:    scoreDestiny(candidate, destiny),
		Path:       scorePath(candidate, path),
	}
	b.Raw = b.Expression.Points + b.Destiny.Points + b.Path.Points
	b.Score = roundScore(b.Raw)
	return b
}

func scoreExpression(candidate, expression int) DimensionScore {
	rel := Classify(candidate, expression)
	switch rel {
	case RelationExact:
		return DimensionScore{rel, expressionExact}
	case RelationFavorable:
		return DimensionScore{rel, expressionFavorable}
	case RelationUnfavorable:
		return DimensionScore{rel, expressionUnfavorable}
	default:
		return DimensionScore{rel, expressionNeutral}
	}
}

func scoreDestiny(candidate, destiny int) DimensionScore {
	rel := Classify(candidate, destiny)
	switch rel {
	case RelationExact:
		return DimensionScore{rel, destinyExact}
	case RelationFavorable:
		return DimensionScore{rel, destinyFavorable}
	case RelationUnfavorable:
		return DimensionScore{rel, destinyUnfavorable}
	default:
		return DimensionScore{rel, destinyNeutral}
	}
}

// Path ignores the harmony table and only compares parity.
func scorePath(candidate, path int) DimensionScore {
	switch {
	case candidate == path:
		return DimensionScore{RelationExact, pathExact}
	case candidate%2 == path%2:
		return DimensionScore{RelationFavorable, pathSameParity}
	default:
		return DimensionScore{RelationNeutral, pathOtherParity}
	}
}

func roundScore(raw int) int {
	rounded := int(math.Floor(float64(raw)/scoreGranularity+0.5)) * scoreGranularity
	if rounded > MaxScore {
		return MaxScore
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}
