package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"menubg/internal/logging"
)

// LockFileName is created inside the lock directory while a job runs.
const LockFileName = "menubg.lock"

var (
	// ErrBusy is returned by Submit while another job is active.
	ErrBusy = errors.New("another job is already running")
	// ErrLocked is returned when a different process holds the lock file.
	ErrLocked = errors.New("another menubg process is working on these files")
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("worker closed")
)

// Task is the body of a job.
type Task func(ctx context.Context) error

// Job is a handle on a submitted task.
type Job struct {
	ID      string
	Name    string
	Started time.Time

	done     chan struct{}
	err      error
	finished time.Time
}

// Done is closed when the task returns.
func (j *Job) Done() <-chan struct{} { return j.done }

// Err returns the task error once Done is closed.
func (j *Job) Err() error {
	<-j.done
	return j.err
}

// Duration returns how long the task ran once Done is closed.
func (j *Job) Duration() time.Duration {
	<-j.done
	return j.finished.Sub(j.Started)
}

// Wait blocks until the job finishes or ctx ends.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Worker serialises jobs.
type Worker struct {
	lockPath string
	lock     *flock.Flock
	logger   *slog.Logger

	mu     sync.Mutex
	active *Job
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// New returns a Worker that locks lockDir/menubg.lock while a job runs.
func New(lockDir string, logger *slog.Logger) *Worker {
	lockPath := filepath.Join(lockDir, LockFileName)
	return &Worker{
		lockPath: lockPath,
		lock:     flock.New(lockPath),
		logger:   logging.NewComponentLogger(logger, "worker"),
	}
}


// Submit starts task on a new goroutine and returns immediately.
func (w *Worker) Submit(ctx context.Context, name string, task Task) (*Job, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}
	if w.active != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrBusy, w.active.Name, w.active.ID)
	}

	if err := os.MkdirAll(filepath.Dir(w.lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := w.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, w.lockPath)
	}

	job := &Job{
		ID:      uuid.NewString(),
		Name:    name,
		Started: time.Now(),
		done:    make(chan struct{}),
	}
	jobCtx, cancel := context.WithCancel(logging.WithJobID(ctx, job.ID))
	w.active = job
	w.cancel = cancel

	logger := logging.WithContext(jobCtx, w.logger)
	logger.Info("job started", logging.String("job", name))

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		err := run(jobCtx, task)
		cancel()

		w.mu.Lock()
		w.active = nil
		w.cancel = nil
		if unlockErr := w.lock.Unlock(); unlockErr != nil {
			logger.Warn("failed to release lock", logging.String("lock", w.lockPath), logging.Error(unlockErr))
		}
		w.mu.Unlock()

		job.err = err
		job.finished = time.Now()
		if err != nil {
			logger.Error("job failed", logging.String("job", name), logging.Error(err))
		} else {
			logger.Info("job finished", logging.String("job", name), logging.Duration("duration", job.finished.Sub(job.Started)))
		}
		close(job.done)
	}()

	return job, nil
}

// Close cancels any running job, waits for it, and rejects later submissions.
func (w *Worker) Close() {
	w.mu.Lock()
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return task(ctx)
}
