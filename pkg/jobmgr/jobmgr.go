// Package jobmgr runs named asynchronous jobs with cancellation, optional start
// delays, status callbacks and in-memory tracking of pending and running jobs.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(func(msg string) {
//	    log.Println("JOB:", msg)
//	})
//
//	err := jm.StartAfter("reply:42", 3*time.Second, func(ctx context.Context) error {
//	    // runs once the delay has elapsed, unless the job was stopped first
//	    return nil
//	})
//
//	// on shutdown
//	jm.Close()
//	jm.Wait()
//
// There is no retry logic and no persistence: a stopped or abandoned job is gone.
package jobmgr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrStopped is reported for delayed jobs cancelled before their delay elapsed.
var ErrStopped = errors.New("job stopped before it started")

// ErrClosed is returned by StartAfter once Close has been called.
var ErrClosed = errors.New("job manager closed")

// Job represents a pending or running unit of work.
// Jobs are added and removed by Manager automatically.
type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// StatusReporter receives lifecycle events for jobs.
// Example messages:
//
//	running:babble:1f2e
//	error:babble:1f2e:job stopped before it started
//	done:babble:1f2e
type StatusReporter func(string)

// Manager orchestrates starting, stopping and tracking jobs.
// It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	wg       sync.WaitGroup
	closed   bool
	Reporter StatusReporter
}

// NewManager creates a new Manager.
// The reporter callback may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*Job),
		Reporter: reporter,
	}
}

// StartAsync runs a job in a separate goroutine and returns immediately.
// If a job with the same name is already tracked, an error is returned.
// Jobs are removed automatically after completion (success or failure).
func (m *Manager) StartAsync(name string, runner func(ctx context.Context) error) error {
	return m.StartAfter(name, 0, runner)
}

// StartAfter is StartAsync with a start delay. Stopping the job during the delay
// means runner is never called.
func (m *Manager) StartAfter(name string, delay time.Duration, runner func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{Name: name, Cancel: cancel}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		cancel()
		return ErrClosed
	}
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job '%s' is already running", name)
	}
	m.jobs[name] = job
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer m.remove(job)
		defer cancel()

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				m.report("error:" + name + ":" + ErrStopped.Error())
				return
			case <-timer.C:
			}
		}

		m.report("running:" + name)

		if err := runner(ctx); err != nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}
	}()

	return nil
}

// Stop cancels a job by name.
// If the job is not tracked, an error is returned.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}

	job.Cancel()
	delete(m.jobs, name)
	return nil
}

// Close refuses any further jobs and cancels the tracked ones, returning how
// many were cancelled. Call Wait afterwards to let running jobs return.
func (m *Manager) Close() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	n := len(m.jobs)
	for name, job := range m.jobs {
		job.Cancel()
		delete(m.jobs, name)
	}
	return n
}

// Wait blocks until every started job goroutine has returned.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// List returns the sorted names of tracked jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of tracked jobs.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

// remove drops job from tracking unless a newer job already reuses its name.
func (m *Manager) remove(job *Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jobs[job.Name] == job {
		delete(m.jobs, job.Name)
	}
}

// report delivers lifecycle messages to the reporter if present.
func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
