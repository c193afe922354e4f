package worker

import (
	"context"
	"errors"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/config"
	"github.com/Deekshith-46/brain-buzz/internal/logger"
	"github.com/Deekshith-46/brain-buzz/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	pendingSweepInterval   = time.Minute
	pendingSweepBatchLimit = 200
)

// Service runs the asynq server plus periodic maintenance loops
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the queue worker service
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name reports the service name
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the worker until the server stops
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.PurchaseService != nil {
		go s.runPendingSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the worker down
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runPendingSweepLoop is a safety net behind the per-purchase timeout
// tasks, catching purchases whose cancel task was lost.
func (s *Service) runPendingSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.PurchaseService == nil {
		return
	}
	runOnce := func() {
		cancelled, err := s.consumer.PurchaseService.SweepExpiredPending(time.Now(), pendingSweepBatchLimit)
		if err != nil {
			logger.Warnw("worker_pending_sweep_failed", "error", err)
			return
		}
		if cancelled > 0 {
			logger.Infow("worker_pending_sweep_cancelled", "count", cancelled)
		}
	}
	runOnce()

	ticker := time.NewTicker(pendingSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
