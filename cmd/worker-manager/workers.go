package main

import (
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	commonaws "numerology-workers/internal/common/aws"
	"numerology-workers/internal/common/camunda"
	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/database"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/observability"
	"numerology-workers/internal/profiles"
	sar "numerology-workers/internal/workers/communication/send-aptitude-report"
	cas "numerology-workers/internal/workers/numerology/calculate-aptitude-score"
	fiv "numerology-workers/internal/workers/numerology/find-ideal-vibration"
	mp "numerology-workers/internal/workers/numerology/match-professions"
)

type notifiers struct {
	email *commonaws.SESClient
	sms   *commonaws.SNSClient
}

type deps struct {
	cfg      *config.Config
	store    *profiles.Store
	es       *database.ElasticsearchClient
	notifier notifiers
	obs      *observability.Observability
	log      logger.Logger
}

// registerWorkers opens a job worker for every enabled task type.
func registerWorkers(client zbc.Client, d deps) ([]worker.JobWorker, error) {
	var opened []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(d.cfg, taskType), handler, d.log); w != nil {
			opened = append(opened, w)
		}
	}

	calc, err := cas.NewHandler(cas.HandlerOptions{
		AppConfig:     d.cfg,
		Profiles:      d.store,
		Recorder:      d.store,
		Observability: d.obs,
		Logger:        d.log,
	})
	if err != nil {
		return nil, err
	}
	start(cas.TaskType, calc.Handle)

	ideal, err := fiv.NewHandler(fiv.HandlerOptions{
		AppConfig:     d.cfg,
		Profiles:      d.store,
		Observability: d.obs,
		Logger:        d.log,
	})
	if err != nil {
		return nil, err
	}
	start(fiv.TaskType, ideal.Handle)

	if config.IsWorkerEnabled(d.cfg, mp.TaskType) {
		if d.es == nil {
			return nil, fmt.Errorf("%s is enabled but elasticsearch is not connected", mp.TaskType)
		}
		match, err := mp.NewHandler(mp.HandlerOptions{
			AppConfig:     d.cfg,
			ESClient:      d.es.Client,
			Profiles:      d.store,
			Observability: d.obs,
			Logger:        d.log,
		})
		if err != nil {
			return nil, err
		}
		start(mp.TaskType, match.Handle)
	}

	// Nil clients must reach the handler as nil interfaces.
	opts := sar.HandlerOptions{AppConfig: d.cfg, Observability: d.obs, Logger: d.log}
	if d.notifier.email != nil {
		opts.Email = d.notifier.email
	}
	if d.notifier.sms != nil {
		opts.SMS = d.notifier.sms
	}
	report, err := sar.NewHandler(opts)
	if err != nil {
		return nil, err
	}
	start(sar.TaskType, report.Handle)

	return opened, nil
}
