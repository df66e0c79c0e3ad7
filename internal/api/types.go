package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/samber/mo"
)

const dateTimeFormat = "2006-01-02 15:04"

type dateTime time.Time

func (d dateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(dateTimeFormat))
}

func (d *dateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	t, err := time.Parse(dateTimeFormat, s)
	if err != nil {
		return fmt.Errorf("invalid date time %q, expected %v", s, dateTimeFormat)
	}

	*d = dateTime(t)
	return nil
}

type duration time.Duration

func (d duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}

	*d = duration(v)
	return nil
}

type reminders struct {
	Enabled bool       `json:"enabled"`
	Offsets []duration `json:"offsets"`
}

type endCondition struct {
	Type        model.EndType `json:"type"`
	Occurrences int           `json:"occurrences,omitempty"`
	Date        model.Date    `json:"date,omitempty"`
}

type exception struct {
	OriginalDate model.Date            `json:"original_date"`
	Action       model.ExceptionAction `json:"action"`
	NewDate      *model.Date           `json:"new_date,omitempty"`
	NewBlockID   *string               `json:"new_block_id,omitempty"`
}

type recurrenceRule struct {
	Enabled    bool                 `json:"enabled"`
	Type       model.RecurrenceType `json:"type"`
	Frequency  int                  `json:"frequency,omitempty"`
	DaysOfWeek []int                `json:"days_of_week,omitempty"`
	DayOfMonth int                  `json:"day_of_month,omitempty"`
	End        endCondition         `json:"end"`
	Exceptions []exception          `json:"exceptions"`
}

type taskResp struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Deadline    *dateTime              `json:"deadline,omitempty"`
	Reminders   reminders              `json:"reminders"`
	BlockID     string                 `json:"block_id,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
	Recurrence  recurrenceRule         `json:"recurrence"`
}

type instanceResp struct {
	ID           string                 `json:"id,omitempty"`
	ParentTaskID string                 `json:"parent_task_id"`
	Date         model.Date             `json:"date"`
	Status       model.TaskStatus       `json:"status"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	Deadline     *dateTime              `json:"deadline,omitempty"`
	Reminders    reminders              `json:"reminders"`
	BlockID      string                 `json:"block_id,omitempty"`
	Extra        map[string]interface{} `json:"extra,omitempty"`
}

func mapToTaskResp(task *model.ParentTask) (*taskResp, error) {
	return &taskResp{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Deadline:    mapToDateTime(task.Deadline),
		Reminders:   mapToReminders(task.Reminders),
		BlockID:     task.BlockID,
		Extra:       task.Extra,
		Recurrence:  mapToRecurrenceRule(&task.Recurrence),
	}, nil
}

func mapToInstanceResp(i *model.TaskInstance) (*instanceResp, error) {
	return &instanceResp{
		ID:           i.ID,
		ParentTaskID: i.ParentTaskID,
		Date:         i.Date,
		Status:       i.Status,
		Title:        i.Title,
		Description:  i.Description,
		Deadline:     mapToDateTime(i.Deadline),
		Reminders:    mapToReminders(i.Reminders),
		BlockID:      i.BlockID,
		Extra:        i.Extra,
	}, nil
}

func mapToDateTime(t *time.Time) *dateTime {
	if t == nil {
		return nil
	}
	d := dateTime(*t)
	return &d
}

func mapToReminders(r model.ReminderSettings) reminders {
	offsets, _ := mapSlice(r.Offsets, func(d time.Duration) (duration, error) {
		return duration(d), nil
	})

	return reminders{
		Enabled: r.Enabled,
		Offsets: offsets,
	}
}

func mapFromReminders(r reminders) model.ReminderSettings {
	offsets, _ := mapSlice(r.Offsets, func(d duration) (time.Duration, error) {
		return time.Duration(d), nil
	})

	return model.ReminderSettings{
		Enabled: r.Enabled,
		Offsets: offsets,
	}
}

func mapToRecurrenceRule(rule *model.RecurrenceRule) recurrenceRule {
	days, _ := mapSlice(rule.DaysOfWeek, func(d time.Weekday) (int, error) {
		return int(d), nil
	})
	exceptions, _ := mapSlice(rule.Exceptions, func(e model.Exception) (exception, error) {
		return mapToException(e), nil
	})

	return recurrenceRule{
		Enabled:    rule.Enabled,
		Type:       rule.Type,
		Frequency:  rule.Frequency,
		DaysOfWeek: days,
		DayOfMonth: rule.DayOfMonth,
		End: endCondition{
			Type:        rule.End.Type,
			Occurrences: rule.End.Occurrences,
			Date:        rule.End.Date,
		},
		Exceptions: exceptions,
	}
}

func mapFromRecurrenceRule(rule *recurrenceRule) model.RecurrenceRule {
	days, _ := mapSlice(rule.DaysOfWeek, func(d int) (time.Weekday, error) {
		return time.Weekday(d), nil
	})
	exceptions, _ := mapSlice(rule.Exceptions, func(e exception) (model.Exception, error) {
		return mapFromException(&e), nil
	})

	endType := rule.End.Type
	if endType == "" {
		endType = model.EndNever
	}

	return model.RecurrenceRule{
		Enabled:    rule.Enabled,
		Type:       rule.Type,
		Frequency:  rule.Frequency,
		DaysOfWeek: days,
		DayOfMonth: rule.DayOfMonth,
		End: model.EndCondition{
			Type:        endType,
			Occurrences: rule.End.Occurrences,
			Date:        rule.End.Date,
		},
		Exceptions: exceptions,
	}
}

func mapToException(e model.Exception) exception {
	res := exception{
		OriginalDate: e.OriginalDate,
		Action:       e.Action,
	}
	if d, ok := e.NewDate.Get(); ok {
		res.NewDate = &d
	}
	if b, ok := e.NewBlockID.Get(); ok {
		res.NewBlockID = &b
	}

	return res
}

func mapFromException(e *exception) model.Exception {
	res := model.Exception{
		OriginalDate: e.OriginalDate,
		Action:       e.Action,
	}
	if e.NewDate != nil {
		res.NewDate = mo.Some(*e.NewDate)
	}
	if e.NewBlockID != nil {
		res.NewBlockID = mo.Some(*e.NewBlockID)
	}

	return res
}
