package sendaptitudereport

import (
	"context"
	"fmt"

	"numerology-workers/internal/common/camunda"
	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "send-aptitude-report"

type Handler struct {
	config  *Config
	service *Service
	logger  logger.Logger
	runner  *camunda.Runner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Email         EmailSender
	SMS           SMSSender
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

	service := NewService(ServiceDependencies{
		Email:  opts.Email,
		SMS:    opts.SMS,
		Logger: log,
	}, workerConfig)

	return &Handler{
		config:  workerConfig,
		service: service,
		logger:  log,
		runner:  camunda.NewRunner(TaskType, workerConfig.Timeout, log, camunda.WithObservability(opts.Observability)),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, job entities.Job) (interface{}, error) {
		var input Input
		if err := camunda.DecodeVariables(job, inputSchema, &input); err != nil {
			return nil, err
		}
		return h.service.Execute(ctx, &input)
	})
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
