package numerology

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		profile   *Profile
		candidate Candidate
		want      *Evaluation
		wantErr   error
	}{
		{
			name:      "exact match needs no suggestion",
			profile:   &Profile{5, 5, 5},
			candidate: Candidate{Name: "Travel Writer", Vibration: 5},
			want: &Evaluation{
				Candidate: "Travel Writer",
				Profile:   Profile{5, 5, 5},
				Vibration: 5,
				Score:     100,
				Reasons:   []string{ReasonExpressionExact, ReasonDestinyExact, ReasonPathExact},
				Suggestions: Suggestions{
					Needed:           false,
					IdealVibration:   5,
					MaxPossibleScore: 100,
				},
			},
		},
		{
			name:      "neutral dimensions give no reason",
			profile:   &Profile{1, 2, 3},
			candidate: Candidate{Name: "Accountant", Vibration: 1},
			want: &Evaluation{
				Candidate: "Accountant",
				Profile:   Profile{1, 2, 3},
				Vibration: 1,
				Score:     75,
				Reasons:   []string{ReasonExpressionExact, ReasonPathFavorable},
				Suggestions: Suggestions{
					Needed:           true,
					IdealVibration:   1,
					MaxPossibleScore: 75,
				},
			},
		},
		{
			name:      "clash is reported",
			profile:   &Profile{1, 2, 9},
			candidate: Candidate{Name: "Pilot", Vibration: "5"},
			want: &Evaluation{
				Candidate: "Pilot",
				Profile:   Profile{1, 2, 9},
				Vibration: 5,
				Score:     50,
				Reasons:   []string{ReasonExpressionFavorable, ReasonDestinyUnfavorable, ReasonPathFavorable},
				Suggestions: Suggestions{
					Needed:           true,
					IdealVibration:   BestMatch(Profile{1, 2, 9}).IdealVibration,
					MaxPossibleScore: BestMatch(Profile{1, 2, 9}).MaxPossibleScore,
				},
			},
		},
		{
			name:      "raw profile is reduced before scoring",
			profile:   &Profile{38, 29, 25},
			candidate: Candidate{Name: "Architect", Vibration: 11},
			want: &Evaluation{
				Candidate: "Architect",
				Profile:   Profile{11, 11, 7},
				Vibration: 11,
				Score:     90,
				Reasons:   []string{ReasonExpressionExact, ReasonDestinyExact, ReasonPathFavorable},
				Suggestions: Suggestions{
					Needed:           false,
					IdealVibration:   11,
					MaxPossibleScore: 90,
				},
			},
		},
		{
			name:      "missing profile",
			profile:   nil,
			candidate: Candidate{Vibration: 3},
			wantErr:   ErrProfileMissing,
		},
		{
			name:      "incomplete profile",
			profile:   &Profile{Expression: 4, Destiny: 0, Path: 6},
			candidate: Candidate{Vibration: 3},
			wantErr:   ErrProfileIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.profile, tt.candidate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(Evaluation{}, "Breakdown")); diff != "" {
				t.Errorf("Evaluate mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, got.Score, got.Breakdown.Score)
		})
	}
}

func TestEvaluate_DefaultsUnreadableVibration(t *testing.T) {
	for _, raw := range []interface{}{nil, "", "n/a", 0, -2} {
		got, err := Evaluate(&Profile{1, 2, 3}, Candidate{Vibration: raw})
		require.NoError(t, err)
		assert.True(t, got.Defaulted, "raw %v", raw)
		assert.Equal(t, defaultVibration, got.Vibration)
		assert.Equal(t, 75, got.Score)
	}
}

func TestEvaluate_SuggestionThreshold(t *testing.T) {
	below := 0
	for _, e := range Vibrations {
		for _, d := range Vibrations {
			for _, p := range Vibrations {
				for _, v := range Vibrations {
					got, err := Evaluate(&Profile{e, d, p}, Candidate{Vibration: v})
					require.NoError(t, err)
					require.Equal(t, got.Score < SuggestionCutoff, got.Suggestions.Needed)
					require.GreaterOrEqual(t, got.Suggestions.MaxPossibleScore, got.Score)
				}
				if BestMatch(Profile{e, d, p}).MaxPossibleScore < SuggestionCutoff {
					below++
				}
			}
		}
	}
	assert.Equal(t, 1229, below)
}

func TestProfileValidate(t *testing.T) {
	assert.NoError(t, Profile{1, 2, 3}.Validate())
	assert.NoError(t, Profile{1987, 38, 22}.Validate())
	assert.ErrorIs(t, Profile{}.Validate(), ErrProfileIncomplete)
	assert.ErrorIs(t, Profile{1, 2, -5}.Validate(), ErrProfileIncomplete)
}

func BenchmarkEvaluate(b *testing.B) {
	p := &Profile{38, 29, 25}
	c := Candidate{Name: "Architect", Vibration: "11"}
	for i := 0; i < b.N; i++ {
		_, _ = Evaluate(p, c)
	}
}
