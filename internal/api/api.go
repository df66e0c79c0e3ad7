package api

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/task-planner-backend/internal/business/tasks"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	tasks tasksService
}

type tasksService interface {
	CreateTask(ctx context.Context, info *model.TaskCreate, rule model.RecurrenceRule) (*model.ParentTask, error)
	GetTask(ctx context.Context, id string) (*model.ParentTask, error)
	PreviewInstances(parent *model.ParentTask, from, to model.Date) []*model.TaskInstance
	GetInstances(ctx context.Context, parentID string, from, to model.Date) ([]*model.TaskInstance, error)
	AddException(ctx context.Context, taskID string, exception model.Exception) (*model.ParentTask, error)
	RunForUser(ctx context.Context, userID string, lookaheadDays int) *tasks.RunReport
	Today() model.Date
	Lookahead() int
}

func NewApi(logger *zap.SugaredLogger, tasks tasksService) *Api {
	a := &Api{
		logger: logger,
		tasks:  tasks,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Post("/tasks", a.createTaskHandler)
		r.Post("/materialize", a.materializeHandler)

		r.With(a.taskCtx).Route("/tasks/{taskID}", func(r chi.Router) {
			r.Get("/", a.getTaskHandler)
			r.Get("/instances", a.previewInstancesHandler)
			r.Post("/exceptions", a.addExceptionHandler)
			r.Get("/calendar.ics", a.calendarHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
