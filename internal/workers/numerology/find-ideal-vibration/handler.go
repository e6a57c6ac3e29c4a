package findidealvibration

import (
	"context"
	"fmt"

	"numerology-workers/internal/common/camunda"
	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/observability"
	"numerology-workers/internal/numerology"
	"numerology-workers/internal/profiles"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "find-ideal-vibration"

type Handler struct {
	config   *Config
	profiles profiles.Getter
	logger   logger.Logger
	runner   *camunda.Runner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Profiles      profiles.Getter
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
		logger:   log,
		runner:   camunda.NewRunner(TaskType, workerConfig.Timeout, log, camunda.WithObservability(opts.Observability)),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, job entities.Job) (interface{}, error) {
		var input Input
		if err := camunda.DecodeVariables(job, inputSchema, &input); err != nil {
			return nil, err
		}
		return h.execute(ctx, &input)
	})
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := profiles.Resolve(ctx, h.profiles, input.UserProfile.Profile(), input.UserID)
	if err != nil {
		return nil, err
	}

	reduced := profile.Reduced()
	best := numerology.BestMatch(reduced)

	output := &Output{
		IdealVibration:   best.IdealVibration,
		MaxPossibleScore: best.MaxPossibleScore,
		Profile:          reduced,
		Favorable:        numerology.Favorable(reduced.Expression),
	}
	if output.Favorable == nil {
		output.Favorable = []int{}
	}
	if h.config.IncludeTable {
		output.VibrationScores = numerology.ScoreAll(reduced)
	}

	h.logger.Debug("ideal vibration found", map[string]interface{}{
		"userId":           input.UserID,
		"idealVibration":   best.IdealVibration,
		"maxPossibleScore": best.MaxPossibleScore,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}
