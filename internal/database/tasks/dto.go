package tasks

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/samber/mo"
)

type taskDTO struct {
	ID           string
	UserID       string
	ParentTaskID *string
	Title        string
	Description  string
	Deadline     *time.Time
	Reminders    remindersDTO
	BlockID      string
	Extra        map[string]interface{}
	TaskDate     *time.Time
	Status       string
	Recurrence   *recurrenceDTO
}

type remindersDTO struct {
	Enabled bool    `json:"enabled"`
	Offsets []int64 `json:"offsets"`
}

type recurrenceDTO struct {
	Enabled     bool           `json:"enabled"`
	Type        string         `json:"type"`
	Frequency   int            `json:"frequency"`
	DaysOfWeek  []int          `json:"days_of_week"`
	DayOfMonth  int            `json:"day_of_month"`
	EndType     string         `json:"end_type"`
	Occurrences int            `json:"occurrences,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	Exceptions  []exceptionDTO `json:"exceptions"`
}

type exceptionDTO struct {
	OriginalDate string  `json:"original_date"`
	Action       string  `json:"action"`
	NewDate      *string `json:"new_date"`
	NewBlockID   *string `json:"new_block_id"`
}

func mapToParentTask(dto *taskDTO) (*model.ParentTask, error) {
	if dto.Recurrence == nil {
		return nil, fmt.Errorf("task %v has no recurrence rule", dto.ID)
	}

	rule, err := mapToRecurrence(dto.Recurrence)
	if err != nil {
		return nil, fmt.Errorf("map recurrence of task %v: %w", dto.ID, err)
	}

	return &model.ParentTask{
		ID:         dto.ID,
		Recurrence: rule,
		TaskCreate: mapToTaskCreate(dto),
	}, nil
}

func mapToInstance(dto *taskDTO) *model.TaskInstance {
	res := &model.TaskInstance{
		ID:         dto.ID,
		Status:     model.TaskStatus(dto.Status),
		TaskCreate: mapToTaskCreate(dto),
	}
	if dto.ParentTaskID != nil {
		res.ParentTaskID = *dto.ParentTaskID
	}
	if dto.TaskDate != nil {
		res.Date = model.DateOf(*dto.TaskDate)
	}

	return res
}

func mapToTaskCreate(dto *taskDTO) model.TaskCreate {
	offsets := make([]time.Duration, len(dto.Reminders.Offsets))
	for i, o := range dto.Reminders.Offsets {
		offsets[i] = time.Duration(o)
	}

	return model.TaskCreate{
		UserID:      dto.UserID,
		Title:       dto.Title,
		Description: dto.Description,
		Deadline:    dto.Deadline,
		Reminders: model.ReminderSettings{
			Enabled: dto.Reminders.Enabled,
			Offsets: offsets,
		},
		BlockID: dto.BlockID,
		Extra:   dto.Extra,
	}
}

func mapToRecurrence(dto *recurrenceDTO) (model.RecurrenceRule, error) {
	days := make([]time.Weekday, len(dto.DaysOfWeek))
	for i, d := range dto.DaysOfWeek {
		days[i] = time.Weekday(d)
	}

	end := model.EndCondition{
		Type:        model.EndType(dto.EndType),
		Occurrences: dto.Occurrences,
	}
	if dto.EndDate != "" {
		var err error
		end.Date, err = model.ParseDate(dto.EndDate)
		if err != nil {
			return model.RecurrenceRule{}, err
		}
	}

	exceptions, err := mapToExceptions(dto.Exceptions)
	if err != nil {
		return model.RecurrenceRule{}, err
	}

	return model.RecurrenceRule{
		Enabled:    dto.Enabled,
		Type:       model.RecurrenceType(dto.Type),
		Frequency:  dto.Frequency,
		DaysOfWeek: days,
		DayOfMonth: dto.DayOfMonth,
		End:        end,
		Exceptions: exceptions,
	}, nil
}

func mapToExceptions(dtos []exceptionDTO) ([]model.Exception, error) {
	res := make([]model.Exception, len(dtos))
	for i, d := range dtos {
		original, err := model.ParseDate(d.OriginalDate)
		if err != nil {
			return nil, err
		}

		e := model.Exception{
			OriginalDate: original,
			Action:       model.ExceptionAction(d.Action),
		}
		if d.NewDate != nil {
			newDate, err := model.ParseDate(*d.NewDate)
			if err != nil {
				return nil, err
			}
			e.NewDate = mo.Some(newDate)
		}
		if d.NewBlockID != nil {
			e.NewBlockID = mo.Some(*d.NewBlockID)
		}

		res[i] = e
	}

	return res, nil
}

func mapFromReminders(r model.ReminderSettings) remindersDTO {
	offsets := make([]int64, len(r.Offsets))
	for i, o := range r.Offsets {
		offsets[i] = int64(o)
	}

	return remindersDTO{
		Enabled: r.Enabled,
		Offsets: offsets,
	}
}

func mapFromRecurrence(rule *model.RecurrenceRule) *recurrenceDTO {
	days := make([]int, len(rule.DaysOfWeek))
	for i, d := range rule.DaysOfWeek {
		days[i] = int(d)
	}

	res := &recurrenceDTO{
		Enabled:     rule.Enabled,
		Type:        string(rule.Type),
		Frequency:   rule.Frequency,
		DaysOfWeek:  days,
		DayOfMonth:  rule.DayOfMonth,
		EndType:     string(rule.End.Type),
		Occurrences: rule.End.Occurrences,
		Exceptions:  mapFromExceptions(rule.Exceptions),
	}
	if !rule.End.Date.IsZero() {
		res.EndDate = rule.End.Date.String()
	}

	return res
}

func mapFromExceptions(exceptions []model.Exception) []exceptionDTO {
	res := make([]exceptionDTO, len(exceptions))
	for i, e := range exceptions {
		d := exceptionDTO{
			OriginalDate: e.OriginalDate.String(),
			Action:       string(e.Action),
		}
		if newDate, ok := e.NewDate.Get(); ok {
			s := newDate.String()
			d.NewDate = &s
		}
		if blockID, ok := e.NewBlockID.Get(); ok {
			d.NewBlockID = &blockID
		}

		res[i] = d
	}

	return res
}

func extraOrEmpty(extra map[string]interface{}) map[string]interface{} {
	if extra == nil {
		return map[string]interface{}{}
	}
	return extra
}
