package schedule

import (
	"sync"
	"time"

	"log/slog"

	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Scheduler wraps gocron's one-time jobs so that at most one delivery is
// outstanding per operator. Scheduling a new job cancels the previous one
// (explicit cancel-then-register); cancelling a job that already fired is a
// no-op. Jobs do not survive a restart.
type Scheduler struct {
	inner gocron.Scheduler

	mu   sync.Mutex
	jobs map[int64]uuid.UUID
}

// New builds a stopped scheduler; call Start before scheduling.
func New() (*Scheduler, error) {
	inner, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		inner: inner,
		jobs:  make(map[int64]uuid.UUID),
	}, nil
}

// Start launches the job runner.
func (s *Scheduler) Start() {
	s.inner.Start()
	logger.Info(logger.Background(), "sched", "scheduler started", slog.String("event", "start"))
}

// Stop shuts the runner down, waiting for in-flight jobs.
func (s *Scheduler) Stop() error {
	return s.inner.Shutdown()
}

// Schedule registers a one-shot task firing at the given instant on behalf of
// owner, cancelling any job previously registered for the same owner. The
// task must capture a frozen snapshot, never live mutable state.
func (s *Scheduler) Schedule(owner int64, at time.Time, task func()) (uuid.UUID, error) {
	s.Cancel(owner)

	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.inner.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(func() {
			task()
			s.forget(owner)
		}),
	)
	if err != nil {
		logger.Error(logger.Background(), "sched", "job registration failed",
			slog.String("event", "register"),
			slog.Int64("owner", owner),
			slog.Time("at", at),
			slog.String("err", err.Error()),
		)
		return uuid.Nil, err
	}

	s.jobs[owner] = job.ID()
	logger.Info(logger.Background(), "sched", "job registered",
		slog.String("event", "register"),
		slog.Int64("owner", owner),
		slog.Time("at", at),
		slog.String("job_id", job.ID().String()),
	)
	return job.ID(), nil
}

// Cancel removes the pending job for owner, if any. Best-effort: a job that
// already fired was forgotten by its own completion hook.
func (s *Scheduler) Cancel(owner int64) {
	s.mu.Lock()
	id, ok := s.jobs[owner]
	if ok {
		delete(s.jobs, owner)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.inner.RemoveJob(id); err != nil {
		logger.Debug(logger.Background(), "sched", "job removal skipped",
			slog.String("event", "cancel"),
			slog.Int64("owner", owner),
			slog.String("job_id", id.String()),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Info(logger.Background(), "sched", "job cancelled",
		slog.String("event", "cancel"),
		slog.Int64("owner", owner),
		slog.String("job_id", id.String()),
	)
}

// Pending reports whether a job is currently registered for owner.
func (s *Scheduler) Pending(owner int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[owner]
	return ok
}

func (s *Scheduler) forget(owner int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, owner)
}
