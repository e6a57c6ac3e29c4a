package workers

import (
	"testing"
	"time"

	"numerology-workers/internal/common/config"
	"numerology-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivities_Defaults(t *testing.T) {
	activities := Activities(nil)
	require.Len(t, activities, len(TaskTypes()))

	reg := registry.Build(activities, time.Now())
	require.NoError(t, reg.Validate())

	calc, ok := reg.Find("calculate-aptitude-score")
	require.True(t, ok)
	assert.True(t, calc.Enabled)
	assert.Equal(t, "30s", calc.Timeout)
	assert.Equal(t, 3, calc.Retries)
	assert.Contains(t, calc.ErrorCodes, "PROFILE_MISSING")
	assert.Equal(t, "object", calc.InputSchema["type"])
	assert.NotEmpty(t, calc.OutputSchema["properties"])

	match, ok := reg.Find("match-professions")
	require.True(t, ok)
	assert.Contains(t, match.ErrorCodes, "INDEX_NOT_FOUND")
	assert.Contains(t, match.Tags, "elasticsearch")
}

func TestActivities_FollowConfig(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		"send-aptitude-report": {Enabled: false, Timeout: 5000},
	}}

	for _, a := range Activities(cfg) {
		if a.TaskType != "send-aptitude-report" {
			assert.True(t, a.Enabled, a.TaskType)
			continue
		}
		assert.False(t, a.Enabled)
		assert.Equal(t, "5s", a.Timeout)
	}
}
