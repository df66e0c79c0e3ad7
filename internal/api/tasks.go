package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/calendar"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/SergeyKozhin/task-planner-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxLookahead = 366

func (a *Api) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Title       string                 `json:"title"`
		Description string                 `json:"description"`
		Deadline    *dateTime              `json:"deadline"`
		Reminders   reminders              `json:"reminders"`
		BlockID     string                 `json:"block_id"`
		Extra       map[string]interface{} `json:"extra"`
		Recurrence  recurrenceRule         `json:"recurrence"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()

	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(validator.In(string(req.Recurrence.Type),
		string(model.RecurrenceDaily),
		string(model.RecurrenceWeekdays),
		string(model.RecurrenceWeekly),
		string(model.RecurrenceMonthly),
		string(model.RecurrenceCustom),
	), "recurrence.type", "unknown recurrence type")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	var deadline *time.Time
	if req.Deadline != nil {
		t := time.Time(*req.Deadline)
		deadline = &t
	}

	task, err := a.tasks.CreateTask(r.Context(), &model.TaskCreate{
		UserID:      chi.URLParam(r, "userID"),
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Reminders:   mapFromReminders(req.Reminders),
		BlockID:     req.BlockID,
		Extra:       req.Extra,
	}, mapFromRecurrenceRule(&req.Recurrence))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidRule):
			a.invalidRuleResponse(w, r, err)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("create task: %w", err))
		}
		return
	}

	resp, _ := mapToTaskResp(task)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	task, ok := r.Context().Value(contextKeyTask).(*model.ParentTask)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveTask)
		return
	}

	resp, _ := mapToTaskResp(task)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) previewInstancesHandler(w http.ResponseWriter, r *http.Request) {
	task, ok := r.Context().Value(contextKeyTask).(*model.ParentTask)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveTask)
		return
	}

	from, to, err := a.parseWindow(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	instances := a.tasks.PreviewInstances(task, from, to)

	resp, _ := mapSlice(instances, mapToInstanceResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) addExceptionHandler(w http.ResponseWriter, r *http.Request) {
	task, ok := r.Context().Value(contextKeyTask).(*model.ParentTask)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveTask)
		return
	}

	req := &exception{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	updated, err := a.tasks.AddException(r.Context(), task.ID, mapFromException(req))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidRule):
			a.invalidRuleResponse(w, r, err)
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("add exception: %w", err))
		}
		return
	}

	resp, _ := mapToTaskResp(updated)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) calendarHandler(w http.ResponseWriter, r *http.Request) {
	task, ok := r.Context().Value(contextKeyTask).(*model.ParentTask)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveTask)
		return
	}

	from, to, err := a.parseWindow(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	instances, err := a.tasks.GetInstances(r.Context(), task.ID, from, to)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get instances: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if err := calendar.Encode(w, task, instances, from, a.tasks.Today(), time.Now()); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) materializeHandler(w http.ResponseWriter, r *http.Request) {
	lookahead := a.tasks.Lookahead()
	if v := r.URL.Query().Get("lookahead"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxLookahead {
			a.badRequestResponse(w, r, fmt.Errorf("lookahead must be an integer between 0 and %d", maxLookahead))
			return
		}
		lookahead = n
	}

	report := a.tasks.RunForUser(r.Context(), chi.URLParam(r, "userID"), lookahead)

	if err := a.writeJSON(w, http.StatusOK, report, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// parseWindow reads from/to query dates, defaulting to the lookahead window
// starting today.
func (a *Api) parseWindow(r *http.Request) (model.Date, model.Date, error) {
	from := a.tasks.Today()
	if v := r.URL.Query().Get("from"); v != "" {
		var err error
		from, err = model.ParseDate(v)
		if err != nil {
			return model.Date{}, model.Date{}, fmt.Errorf("invalid from: %w", err)
		}
	}

	to := from.AddDays(a.tasks.Lookahead())
	if v := r.URL.Query().Get("to"); v != "" {
		var err error
		to, err = model.ParseDate(v)
		if err != nil {
			return model.Date{}, model.Date{}, fmt.Errorf("invalid to: %w", err)
		}
	}

	if to.DaysSince(from) > maxLookahead {
		return model.Date{}, model.Date{}, fmt.Errorf("window must not exceed %d days", maxLookahead)
	}

	return from, to, nil
}
