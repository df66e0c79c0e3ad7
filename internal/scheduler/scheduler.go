package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/business/tasks"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// Scheduler triggers batch materialization for every user owning an enabled
// recurring task.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.SugaredLogger
	tasks   tasksService
	locks   runLocks
	timeout time.Duration
}

type tasksService interface {
	RecurringTaskOwners(ctx context.Context) ([]string, error)
	RunForUser(ctx context.Context, userID string, lookaheadDays int) *tasks.RunReport
	Lookahead() int
}

type runLocks interface {
	Acquire(ctx context.Context, userID string) (release func(), ok bool, err error)
}

func New(loc *time.Location, logger *zap.SugaredLogger, tasks tasksService, locks runLocks, timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
		tasks:   tasks,
		locks:   locks,
		timeout: timeout,
	}
}

// Schedule registers the run with a standard five-field cron spec.
func (s *Scheduler) Schedule(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()

	closer.Bind(func() {
		<-s.cron.Stop().Done()
	})
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.RunAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Errorw("scheduled materialization failed", "err", err)
	}
}

// RunAll runs every owner in turn and stops early only when ctx is done.
func (s *Scheduler) RunAll(ctx context.Context) error {
	owners, err := s.tasks.RecurringTaskOwners(ctx)
	if err != nil {
		return fmt.Errorf("list owners: %w", err)
	}

	s.logger.Debugw("starting scheduled materialization", "users", len(owners))

	for _, userID := range owners {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.runUser(ctx, userID)
	}

	return nil
}

func (s *Scheduler) runUser(ctx context.Context, userID string) {
	release, ok, err := s.locks.Acquire(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to acquire run lock", "user_id", userID, "err", err)
		return
	}
	if !ok {
		s.logger.Debugw("run already in progress elsewhere", "user_id", userID)
		return
	}
	defer release()

	s.tasks.RunForUser(ctx, userID, s.tasks.Lookahead())
}
