package mail

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edumeet/notifier/pkg/jobcontext"
)

// ErrQueueFull is returned when the dispatch queue cannot accept more jobs.
var ErrQueueFull = errors.New("email dispatch queue is full")

type dispatchJob struct {
	id    uuid.UUID
	input SendInput
}

// Dispatcher delivers email in the background through a worker pool. Each
// job runs under a jobcontext so a stuck provider call cannot pin a worker.
type Dispatcher struct {
	service *Service
	logger  *zap.Logger
	jobs    chan dispatchJob
	workers int
	wg      sync.WaitGroup
	stop    chan struct{}
	once    sync.Once
}

// NewDispatcher creates a dispatcher with the given worker count and queue size
func NewDispatcher(service *Service, logger *zap.Logger, workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}
	return &Dispatcher{
		service: service,
		logger:  logger,
		jobs:    make(chan dispatchJob, queueSize),
		workers: workers,
		stop:    make(chan struct{}),
	}
}

// Start launches the worker pool
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop drains in-flight jobs and shuts the pool down
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.stop)
		close(d.jobs)
	})
	d.wg.Wait()
}

// Dispatch queues an email for background delivery and returns the job ID
func (d *Dispatcher) Dispatch(input SendInput) (uuid.UUID, error) {
	job := dispatchJob{
		id:    uuid.New(),
		input: input,
	}

	select {
	case <-d.stop:
		return uuid.Nil, ErrQueueFull
	default:
	}

	select {
	case d.jobs <- job:
		return job.id, nil
	default:
		return uuid.Nil, ErrQueueFull
	}
}

func (d *Dispatcher) worker(workerID int) {
	defer d.wg.Done()

	for job := range d.jobs {
		d.run(workerID, job)
	}
}

func (d *Dispatcher) run(workerID int, job dispatchJob) {
	ctx, cancel := jobcontext.JobBegin(context.Background(), job.id, "email."+string(job.input.Kind), workerID)
	defer cancel()

	meta := jobcontext.GetJobMetadata(ctx)
	start := time.Now()

	log, err := d.service.Send(ctx, job.input)
	if err != nil {
		fields := []zap.Field{
			zap.String("job_id", meta.JobID.String()),
			zap.String("job_type", meta.JobType),
			zap.Int("worker_id", meta.WorkerID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("retryable", jobcontext.IsRetryableError(err)),
			zap.Error(err),
		}
		if log != nil {
			fields = append(fields, zap.String("email_id", log.ID.String()))
		}
		d.logger.Error("background email delivery failed", fields...)
		return
	}

	d.logger.Info("background email delivered",
		zap.String("job_id", meta.JobID.String()),
		zap.String("job_type", meta.JobType),
		zap.Int("worker_id", meta.WorkerID),
		zap.String("email_id", log.ID.String()),
		zap.Duration("elapsed", time.Since(start)))
}
