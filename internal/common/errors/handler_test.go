package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"numerology-workers/internal/common/camunda/camundatest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestHandleJobError_LogsUnsentCommands(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		command string
	}{
		{"fail", NewProfileLookupFailedError("u-1", stderrors.New("connection refused")), "fail-job"},
		{"throw", NewProfileMissingError("u-1"), "throw-error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			client := camundatest.NewJobClient()
			client.FailErrorCommands(stderrors.New("rpc error: code = Unavailable"))
			job := camundatest.NewJob(11, "calculate-aptitude-score", map[string]interface{}{}, 3)

			NewErrorHandler(log).HandleJobError(context.Background(), client, job, tt.err)

			assert.Empty(t, client.Failed())
			assert.Empty(t, client.Thrown())
			require.Len(t, log.messages, 2)
			assert.Equal(t, "failed to send job command", log.messages[1])
			assert.Equal(t, tt.command, log.fields[1]["command"])
			assert.Equal(t, int64(11), log.fields[1]["jobKey"])
			assert.Contains(t, log.fields[1]["error"], "Unavailable")
		})
	}
}

func TestHandleJobError_SentCommandsAreNotLogged(t *testing.T) {
	log := &recordingLogger{}
	client := camundatest.NewJobClient()
	job := camundatest.NewJob(12, "calculate-aptitude-score", map[string]interface{}{}, 3)

	NewErrorHandler(log).HandleJobError(context.Background(), client, job, NewProfileMissingError("u-1"))

	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, []string{"Job failed"}, log.messages)
}
