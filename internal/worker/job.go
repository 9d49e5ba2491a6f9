package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/becketto/xscheduler/internal/services"
)

// Job triggers a dispatch run on a fixed cadence and once immediately on
// start. The in-flight guard skips a tick that fires while the previous run
// is still going; it backs up the durable dispatch lease within the process.
type Job struct {
	ticker     *time.Ticker
	quit       chan struct{}
	dispatcher services.DispatchService
	inFlight   bool
	runOnStart bool
	mu         sync.Mutex
}

func NewJob(interval time.Duration, dispatcher services.DispatchService, runOnStart bool) *Job {
	return &Job{
		ticker:     time.NewTicker(interval),
		quit:       make(chan struct{}),
		dispatcher: dispatcher,
		runOnStart: runOnStart,
	}
}

func (j *Job) Start(ctx context.Context, wg *sync.WaitGroup) {
	log.Println("Post dispatch job started!")
	go func() {
		defer wg.Done()

		if j.runOnStart {
			j.dispatch(ctx)
		}

		for {
			select {
			case <-j.ticker.C:
				j.dispatch(ctx)
			case <-j.quit:
				j.ticker.Stop()
				log.Println("Stopping post dispatch job by toggle")
				return
			case <-ctx.Done():
				j.ticker.Stop()
				log.Println("Application shutdown signal received, stopping post dispatch job")
				return
			}
		}
	}()
}

func (j *Job) Stop() {
	close(j.quit)
	log.Println("Post dispatch job stopped!")
}

func (j *Job) dispatch(ctx context.Context) {
	j.mu.Lock()
	if j.inFlight {
		log.Println("Dispatch run still in flight, skipping this tick")
		j.mu.Unlock()
		return
	}
	j.inFlight = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.inFlight = false
		j.mu.Unlock()
	}()

	// A failed run never stops the loop; the next tick tries again.
	if err := j.dispatcher.RunOnce(ctx); err != nil {
		log.Printf("Unexpected error during dispatch run: %v", err)
	}
}
