package tasks

import (
	"context"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/database"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

type Service struct {
	db        database.PGX
	logger    *zap.SugaredLogger
	tasks     tasksRepository
	now       func() time.Time
	newID     func() string
	dedupe    bool
	workers   int
	lookahead int
}

type tasksRepository interface {
	CreateTask(ctx context.Context, q database.Queryable, task *model.ParentTask) error
	CreateInstance(ctx context.Context, q database.Queryable, instance *model.TaskInstance) (string, error)
	GetTaskByID(ctx context.Context, q database.Queryable, id string) (*model.ParentTask, error)
	GetTaskByIDForUpdate(ctx context.Context, q database.Queryable, id string) (*model.ParentTask, error)
	GetEnabledRecurringTasks(ctx context.Context, q database.Queryable, userID string) ([]mo.Result[*model.ParentTask], error)
	GetRecurringTaskOwners(ctx context.Context, q database.Queryable) ([]string, error)
	GetInstance(ctx context.Context, q database.Queryable, parentID string, date model.Date) (*model.TaskInstance, error)
	GetInstances(ctx context.Context, q database.Queryable, parentID string, from, to model.Date) ([]*model.TaskInstance, error)
	UpdateExceptions(ctx context.Context, q database.Queryable, taskID string, exceptions []model.Exception) error
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// WithDeduplication makes materialization skip dates that already have an
// instance of the same parent.
func WithDeduplication(enabled bool) Option {
	return func(s *Service) {
		s.dedupe = enabled
	}
}

func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLookahead(days int) Option {
	return func(s *Service) {
		if days >= 0 {
			s.lookahead = days
		}
	}
}

const (
	defaultWorkers   = 4
	DefaultLookahead = 14
)

func NewService(db database.PGX, logger *zap.SugaredLogger, repo tasksRepository, opts ...Option) *Service {
	s := &Service{
		db:        db,
		logger:    logger,
		tasks:     repo,
		now:       time.Now,
		newID:     uuid.NewString,
		workers:   defaultWorkers,
		lookahead: DefaultLookahead,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Today is the current calendar day in the clock's location.
func (s *Service) Today() model.Date {
	return model.DateOf(s.now())
}

func (s *Service) Lookahead() int {
	return s.lookahead
}
