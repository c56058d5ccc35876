// Package workers
package workers

import (
	"context"
	"time"

	"social/internal/domain"
	"social/internal/logger"
)

type Manager struct {
	log logger.Logger

	scheduler *Scheduler
	services  *ManagerServices
}

type ManagerServices struct {
	Queue        domain.TaskQueue
	Runner       TaskRunner
	PollInterval time.Duration
}

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

func NewManager(log logger.Logger, scheduler *Scheduler, services *ManagerServices) *Manager {
	return &Manager{
		log: log,

		scheduler: scheduler,
		services:  services,
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.log.Info("worker: manager started")

	interval := m.services.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	m.scheduler.RunByDuration(ctx, interval, NewTaskDispatchWorker(
		m.services.Queue,
		m.services.Runner,
		m.log,
	))
}
