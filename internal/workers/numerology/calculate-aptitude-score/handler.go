package calculateaptitudescore

import (
	"context"
	"errors"
	"fmt"

	"numerology-workers/internal/common/camunda"
	"numerology-workers/internal/common/config"
	apperrors "numerology-workers/internal/common/errors"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/metrics"
	"numerology-workers/internal/common/observability"
	"numerology-workers/internal/numerology"
	"numerology-workers/internal/profiles"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "calculate-aptitude-score"

// Recorder persists an evaluation and returns its id.
type Recorder interface {
	RecordEvaluation(ctx context.Context, userID string, ev *numerology.Evaluation) (string, error)
}

type Handler struct {
	config   *Config
	profiles profiles.Getter
	recorder Recorder
	logger   logger.Logger
	runner   *camunda.Runner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Profiles      profiles.Getter
	Recorder      Recorder
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:   workerConfig,
		profiles: opts.Profiles,
		recorder: opts.Recorder,
		logger:   log,
		runner:   camunda.NewRunner(TaskType, workerConfig.Timeout, log, camunda.WithObservability(opts.Observability)),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, h.process)
}

func (h *Handler) process(ctx context.Context, job entities.Job) (interface{}, error) {
	var input Input
	if err := camunda.DecodeVariables(job, inputSchema, &input); err != nil {
		return nil, err
	}
	return h.execute(ctx, &input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := profiles.Resolve(ctx, h.profiles, input.UserProfile.Profile(), input.UserID)
	if err != nil {
		return nil, err
	}

	candidate := input.Candidate()
	ev, err := numerology.Evaluate(profile, candidate)
	if err != nil {
		return nil, mapEngineError(err, input.UserID)
	}

	if ev.Defaulted {
		metrics.VibrationDefaulted.WithLabelValues(TaskType).Inc()
		h.logger.Warn("profession vibration missing or unreadable, defaulted to 1", map[string]interface{}{
			"profession":   candidate.Name,
			"rawVibration": candidate.Vibration,
			"userId":       input.UserID,
		})
	}
	metrics.AptitudeScore.WithLabelValues(TaskType).Observe(float64(ev.Score))

	output := &Output{
		CalculatedScore:     ev.Score,
		Reasons:             ev.Reasons,
		ProfessionVibration: ev.Vibration,
		VibrationDefaulted:  ev.Defaulted,
		Suggestions:         ev.Suggestions,
		Profession:          ev.Candidate,
	}

	if h.recorder != nil && h.config.RecordEvaluations {
		id, err := h.recorder.RecordEvaluation(ctx, input.UserID, ev)
		if err != nil {
			// The score stands; only the history row is lost.
			h.logger.Warn("failed to record evaluation", map[string]interface{}{
				"userId": input.UserID,
				"error":  err.Error(),
			})
		} else {
			output.EvaluationID = id
		}
	}

	h.logger.Debug("aptitude score calculated", map[string]interface{}{
		"userId":    input.UserID,
		"vibration": ev.Vibration,
		"score":     ev.Score,
		"ideal":     ev.Suggestions.IdealVibration,
	})
	return output, nil
}

func mapEngineError(err error, userID string) error {
	switch {
	case errors.Is(err, numerology.ErrProfileMissing):
		return apperrors.NewProfileMissingError(userID)
	case errors.Is(err, numerology.ErrProfileIncomplete):
		return apperrors.NewProfileIncompleteError(err)
	default:
		return apperrors.NewInternalError(err)
	}
}

// Execute runs the scoring without a job, for tests and the CLI.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
