package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	contextKeyTask = contextKey("task")
)

var errCantRetrieveTask = errors.New("can't retrieve task from context")

// taskCtx loads the task named in the URL. Tasks of other users are reported
// as missing.
func (a *Api) taskCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		taskID := chi.URLParam(r, "taskID")

		task, err := a.tasks.GetTask(r.Context(), taskID)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoRecord):
				a.notFoundResponse(w, r)
			default:
				a.serverErrorResponse(w, r, fmt.Errorf("get task: %w", err))
			}
			return
		}

		if task.UserID != userID {
			a.notFoundResponse(w, r)
			return
		}

		taskCtx := context.WithValue(r.Context(), contextKeyTask, task)
		next.ServeHTTP(w, r.WithContext(taskCtx))
	})
}
