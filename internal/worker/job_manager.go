package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/becketto/xscheduler/internal/services"
)

// JobManager owns the dispatch job lifecycle behind the toggle endpoint.
type JobManager struct {
	currentJob *Job
	mu         sync.Mutex
	dispatcher services.DispatchService
	interval   time.Duration
	isFirstRun bool
	wg         *sync.WaitGroup
}

func NewJobManager(dispatcher services.DispatchService, interval time.Duration, wg *sync.WaitGroup) *JobManager {
	return &JobManager{
		dispatcher: dispatcher,
		interval:   interval,
		isFirstRun: true,
		wg:         wg,
	}
}

// Starts the dispatch job. The very first start also dispatches immediately
// instead of waiting out the first tick.
func (m *JobManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentJob != nil {
		return errors.New("job is already running")
	}
	m.wg.Add(1)

	m.currentJob = NewJob(m.interval, m.dispatcher, m.isFirstRun)
	m.currentJob.Start(ctx, m.wg)

	if m.isFirstRun {
		m.isFirstRun = false
	}

	return nil
}

// Stops the active job. An in-flight dispatch run finishes naturally.
func (m *JobManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentJob == nil {
		return errors.New("actively running job not found")
	}

	m.currentJob.Stop()
	m.currentJob = nil
	return nil
}

func (m *JobManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentJob != nil
}
