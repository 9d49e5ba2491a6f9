package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeDispatcher counts runs and can block to simulate a long dispatch.
type fakeDispatcher struct {
	runs    atomic.Int32
	blockCh chan struct{}
}

func (f *fakeDispatcher) RunOnce(ctx context.Context) error {
	f.runs.Add(1)
	if f.blockCh != nil {
		<-f.blockCh
	}
	return nil
}

func TestJob_RunsImmediatelyOnFirstStart(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	job := NewJob(time.Hour, dispatcher, true)
	defer job.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	job.Start(context.Background(), &wg)

	assert.Eventually(t, func() bool {
		return dispatcher.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestJob_DoesNotRunImmediatelyOnRestart(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	job := NewJob(time.Hour, dispatcher, false)
	defer job.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	job.Start(context.Background(), &wg)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), dispatcher.runs.Load())
}

func TestJob_InFlightGuardSkipsOverlappingTick(t *testing.T) {
	dispatcher := &fakeDispatcher{blockCh: make(chan struct{})}
	job := NewJob(time.Hour, dispatcher, false)

	done := make(chan struct{})
	go func() {
		job.dispatch(context.Background())
		close(done)
	}()

	// Wait for the blocking run to be in flight, then a second dispatch
	// must return without running.
	assert.Eventually(t, func() bool {
		return dispatcher.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)

	job.dispatch(context.Background())
	assert.Equal(t, int32(1), dispatcher.runs.Load())

	close(dispatcher.blockCh)
	<-done

	// After the first run finishes the guard clears again.
	dispatcher.blockCh = nil
	job.dispatch(context.Background())
	assert.Equal(t, int32(2), dispatcher.runs.Load())
}

func TestJob_StopsOnContextCancel(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	job := NewJob(time.Hour, dispatcher, false)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	job.Start(ctx, &wg)

	cancel()
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after context cancel")
	}
}

func TestJobManager_ToggleLifecycle(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	var wg sync.WaitGroup
	manager := NewJobManager(dispatcher, time.Hour, &wg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.False(t, manager.IsRunning())

	assert.NoError(t, manager.Start(ctx))
	assert.True(t, manager.IsRunning())

	// Starting twice is an error.
	assert.Error(t, manager.Start(ctx))

	assert.NoError(t, manager.Stop())
	assert.False(t, manager.IsRunning())

	// Stopping an already stopped manager is an error.
	assert.Error(t, manager.Stop())
}

func TestJobManager_OnlyFirstStartRunsImmediately(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	var wg sync.WaitGroup
	manager := NewJobManager(dispatcher, time.Hour, &wg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NoError(t, manager.Start(ctx))
	assert.Eventually(t, func() bool {
		return dispatcher.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)

	assert.NoError(t, manager.Stop())

	// A restart waits for the next tick instead of dispatching again.
	assert.NoError(t, manager.Start(ctx))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), dispatcher.runs.Load())
	assert.NoError(t, manager.Stop())
}
