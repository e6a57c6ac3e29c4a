// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/errors"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/metrics"
	"numerology-workers/internal/common/observability"
	"numerology-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	statusCompleted = "completed"
	statusFailed    = "failed"

	// commandTimeout bounds the complete/fail/throw round trip, independent of the
	// job's own deadline.
	commandTimeout = 10 * time.Second
)

// JobFunc does the work for one job and returns the output variables.
type JobFunc func(ctx context.Context, job entities.Job) (interface{}, error)

// Runner carries the bookkeeping every worker shares: active gauge, span, timeout,
// completion and the error handler.
type Runner struct {
	taskType string
	timeout  time.Duration
	logger   logger.Logger
	errors   *errors.ErrorHandler
	obs      *observability.Observability
	retry    *RetryConfig
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithObservability records spans and OTel job metrics through obs.
func WithObservability(obs *observability.Observability) RunnerOption {
	return func(r *Runner) { r.obs = obs }
}

// WithRetryConfig overrides the backoff used when sending the complete command.
func WithRetryConfig(rc *RetryConfig) RunnerOption {
	return func(r *Runner) { r.retry = rc }
}

func NewRunner(taskType string, timeout time.Duration, log logger.Logger, opts ...RunnerOption) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	r := &Runner{
		taskType: taskType,
		timeout:  timeout,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
		retry:    DefaultRetryConfig,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes fn for job and reports the outcome to the broker. Errors go through
// the shared ErrorHandler so the retry-or-throw decision is the same for every worker.
func (r *Runner) Run(client worker.JobClient, job entities.Job, fn JobFunc) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	ctx, span := r.obs.StartSpan(ctx, r.taskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)
	defer span.End()

	jobLog := r.logger.WithFields(map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})
	jobLog.Info("processing job", nil)

	output, err := fn(ctx, job)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.fail(client, job, err, start)
		return
	}

	sendCtx, sendCancel := context.WithTimeout(context.Background(), commandTimeout)
	defer sendCancel()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.fail(client, job, errors.NewInternalError(err), start)
		return
	}

	_, err = executeWithRetry(sendCtx, r.retry, func(ctx context.Context) (interface{}, error) {
		return cmd.Send(ctx)
	}, "complete-job")
	if err != nil {
		// The broker will re-activate the job once its deadline passes.
		jobLog.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		r.record(statusFailed, start)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	r.record(statusCompleted, start)
	jobLog.Info("job completed", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
	})
}

func (r *Runner) fail(client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	r.errors.HandleJobError(ctx, client, job, stdErr)
	r.record(statusFailed, start)
}

func (r *Runner) record(status string, start time.Time) {
	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())

	ctx := context.Background()
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)
}

// StartWorker opens a job worker for taskType when it is enabled and returns it so the
// caller can close it on shutdown. A disabled worker returns nil.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(taskType + "-worker").
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// DecodeVariables validates the job variables against schema and decodes them into
// out. Failures are non-retryable input errors.
func DecodeVariables(job entities.Job, schema *validation.Schema, out interface{}) error {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewInputParsingError(err)
	}
	if schema != nil {
		if result := schema.Validate(vars); !result.Valid {
			return errors.NewValidationError(result.Error()).
				WithMetadata("validationErrors", result.GetErrorMessages())
		}
	}
	if err := json.Unmarshal([]byte(job.Variables), out); err != nil {
		return errors.NewInputParsingError(err)
	}
	return nil
}
