package numerology

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// The golden file pins every score the engine can produce. Regenerate with
// go test ./internal/numerology -run TestScoreMatrixGolden -update
func TestScoreMatrixGolden(t *testing.T) {
	var buf bytes.Buffer
	for _, e := range Vibrations {
		for _, d := range Vibrations {
			for _, p := range Vibrations {
				fmt.Fprintf(&buf, "E=%-2d D=%-2d P=%-2d |", e, d, p)
				for _, v := range Vibrations {
					fmt.Fprintf(&buf, " %3d", Score(v, e, d, p))
				}
				best := BestMatch(Profile{e, d, p})
				fmt.Fprintf(&buf, " | ideal=%d max=%d\n", best.IdealVibration, best.MaxPossibleScore)
			}
		}
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "score_matrix", buf.Bytes())
}
