package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	WorkerJobsCompleted.WithLabelValues("test-task").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("test-task")))

	VibrationDefaulted.WithLabelValues("test-task").Add(2)
	assert.Equal(t, float64(2), testutil.ToFloat64(VibrationDefaulted.WithLabelValues("test-task")))

	ProfileLookups.WithLabelValues("cache").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(ProfileLookups.WithLabelValues("cache")))
}

func TestAptitudeScoreBuckets(t *testing.T) {
	AptitudeScore.WithLabelValues("test-task").Observe(75)
	assert.Equal(t, 1, testutil.CollectAndCount(AptitudeScore, "aptitude_score"))
}
