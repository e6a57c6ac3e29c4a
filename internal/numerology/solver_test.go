package numerology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestMatch(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    Suggestion
	}{
		{"all fives", Profile{5, 5, 5}, Suggestion{5, 100}},
		{"all fours", Profile{4, 4, 4}, Suggestion{4, 100}},
		{"all eights", Profile{8, 8, 8}, Suggestion{8, 100}},
		{"mixed low", Profile{1, 2, 3}, Suggestion{1, 75}},
		{"master reached when digits fall short", Profile{11, 11, 7}, Suggestion{11, 90}},
		{"all masters", Profile{11, 11, 11}, Suggestion{11, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BestMatch(tt.profile))
		})
	}
}

// Enumerates the whole canonical profile space and checks the solver against brute force.
func TestBestMatch_IsMaximal(t *testing.T) {
	for _, e := range Vibrations {
		for _, d := range Vibrations {
			for _, p := range Vibrations {
				prof := Profile{e, d, p}
				best := BestMatch(prof)
				require.True(t, IsCanonical(best.IdealVibration), "profile %+v", prof)
				require.Equal(t, best.MaxPossibleScore, Score(best.IdealVibration, e, d, p), "profile %+v", prof)

				top := 0
				for _, v := range Vibrations {
					if s := Score(v, e, d, p); s > top {
						top = s
					}
				}
				require.Equal(t, top, best.MaxPossibleScore, "profile %+v", prof)
			}
		}
	}
}

func TestBestMatch_PrefersDigitsOnTie(t *testing.T) {
	// 8 and 22 both score 100 against 8,8,8; the digit wins.
	assert.Equal(t, 8, BestMatch(Profile{8, 8, 8}).IdealVibration)
}

func TestScoreAll(t *testing.T) {
	got := ScoreAll(Profile{1, 6, 6})
	require.Len(t, got, len(Vibrations))

	want := []int{60, 65, 60, 55, 45, 60, 45, 40, 60, 45, 50}
	for i, vs := range got {
		assert.Equal(t, Vibrations[i], vs.Vibration)
		assert.Equal(t, want[i], vs.Score, "vibration %d", vs.Vibration)
	}
}

func BenchmarkBestMatch(b *testing.B) {
	p := Profile{11, 11, 7}
	for i := 0; i < b.N; i++ {
		BestMatch(p)
	}
}
