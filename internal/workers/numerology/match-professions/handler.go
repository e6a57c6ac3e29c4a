package matchprofessions

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"numerology-workers/internal/common/camunda"
	"numerology-workers/internal/common/config"
	apperrors "numerology-workers/internal/common/errors"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/metrics"
	"numerology-workers/internal/common/observability"
	"numerology-workers/internal/numerology"
	"numerology-workers/internal/profiles"
	"numerology-workers/internal/workers/numerology/match-professions/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const TaskType = "match-professions"

type Handler struct {
	config   *Config
	esClient *elasticsearch.Client
	profiles profiles.Getter
	logger   logger.Logger
	runner   *camunda.Runner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	ESClient      *elasticsearch.Client
	Profiles      profiles.Getter
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.ESClient == nil {
		return nil, fmt.Errorf("elasticsearch client is required for %s", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:   workerConfig,
		esClient: opts.ESClient,
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

	result, err := catalog.Search(ctx, h.esClient, catalog.Query{
		Index:    h.config.Index,
		Category: input.Category,
		Keywords: input.Keywords,
		Size:     h.config.MaxCandidates,
	})
	if err != nil {
		return nil, h.mapSearchError(ctx, err)
	}

	matches := make([]Match, 0, len(result.Professions))
	var defaulted int
	for _, p := range result.Professions {
		ev, err := numerology.Evaluate(profile, numerology.Candidate{Name: p.Name, Vibration: p.Vibration})
		if err != nil {
			return nil, apperrors.NewProfileIncompleteError(err)
		}
		if ev.Defaulted {
			defaulted++
		}
		matches = append(matches, Match{
			ID:                  p.ID,
			Name:                p.Name,
			Category:            p.Category,
			ProfessionVibration: ev.Vibration,
			VibrationDefaulted:  ev.Defaulted,
			CalculatedScore:     ev.Score,
			Reasons:             ev.Reasons,
		})
	}
	if defaulted > 0 {
		metrics.VibrationDefaulted.WithLabelValues(TaskType).Add(float64(defaulted))
		h.logger.Warn("professions without a readable vibration were scored as 1", map[string]interface{}{
			"count": defaulted,
			"index": h.config.Index,
		})
	}

	ranked := rank(matches, input.MinScore, h.limit(input.Limit))
	for _, m := range ranked {
		metrics.AptitudeScore.WithLabelValues(TaskType).Observe(float64(m.CalculatedScore))
	}

	best := numerology.BestMatch(profile.Reduced())

	h.logger.Info("professions matched", map[string]interface{}{
		"userId":     input.UserID,
		"candidates": len(result.Professions),
		"returned":   len(ranked),
		"tookMs":     result.Took,
	})

	return &Output{
		Matches:          ranked,
		TotalCandidates:  len(result.Professions),
		TotalMatched:     countAtLeast(matches, input.MinScore),
		IdealVibration:   best.IdealVibration,
		MaxPossibleScore: best.MaxPossibleScore,
	}, nil
}

func (h *Handler) limit(requested int) int {
	if requested <= 0 {
		return h.config.DefaultLimit
	}
	if requested > maxLimit {
		return maxLimit
	}
	return requested
}

// rank orders by score descending, then name, and keeps the first limit matches
// scoring at least minScore.
func rank(matches []Match, minScore, limit int) []Match {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CalculatedScore != sorted[j].CalculatedScore {
			return sorted[i].CalculatedScore > sorted[j].CalculatedScore
		}
		return sorted[i].Name < sorted[j].Name
	})

	out := make([]Match, 0, limit)
	for _, m := range sorted {
		if m.CalculatedScore < minScore {
			break
		}
		if len(out) == limit {
			break
		}
		out = append(out, m)
	}
	return out
}

func countAtLeast(matches []Match, minScore int) int {
	n := 0
	for _, m := range matches {
		if m.CalculatedScore >= minScore {
			n++
		}
	}
	return n
}

func (h *Handler) mapSearchError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrIndexNotFound):
		return apperrors.NewIndexNotFoundError(h.config.Index)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.NewProfessionSearchTimeoutError(err)
	default:
		return apperrors.NewProfessionSearchFailedError(err)
	}
}

// Execute runs the matching without a job, for tests and the CLI.
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
