package tasks

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceMapping(t *testing.T) {
	rule := model.RecurrenceRule{
		Enabled:    true,
		Type:       model.RecurrenceWeekly,
		DaysOfWeek: []time.Weekday{time.Sunday, time.Wednesday},
		End:        model.EndCondition{Type: model.EndOnDate, Date: model.NewDate(2024, 3, 1)},
		Exceptions: []model.Exception{
			{OriginalDate: model.NewDate(2024, 1, 3), Action: model.ExceptionSkip},
			{
				OriginalDate: model.NewDate(2024, 1, 7),
				Action:       model.ExceptionReschedule,
				NewDate:      mo.Some(model.NewDate(2024, 1, 8)),
				NewBlockID:   mo.Some("evening"),
			},
		},
	}

	dto := mapFromRecurrence(&rule)
	assert.Equal(t, []int{0, 3}, dto.DaysOfWeek)
	assert.Equal(t, "2024-03-01", dto.EndDate)
	require.Len(t, dto.Exceptions, 2)
	assert.Nil(t, dto.Exceptions[0].NewDate)
	assert.Equal(t, "2024-01-08", *dto.Exceptions[1].NewDate)

	got, err := mapToRecurrence(dto)
	require.NoError(t, err)
	assert.Equal(t, rule, got)
}

func TestRecurrenceMapping_NeverEnd(t *testing.T) {
	dto := mapFromRecurrence(&model.RecurrenceRule{
		Type:       model.RecurrenceDaily,
		Frequency:  3,
		End:        model.EndCondition{Type: model.EndNever},
		Exceptions: nil,
	})

	assert.Empty(t, dto.EndDate)
	assert.NotNil(t, dto.Exceptions)
}

func TestMapToRecurrence_BadDate(t *testing.T) {
	_, err := mapToRecurrence(&recurrenceDTO{
		Type:       "weekly",
		Exceptions: []exceptionDTO{{OriginalDate: "03.01.2024", Action: "skip"}},
	})
	assert.Error(t, err)
}

func TestMapToParentTask_NoRecurrence(t *testing.T) {
	_, err := mapToParentTask(&taskDTO{ID: "t1"})
	assert.Error(t, err)
}

func TestMapToInstance(t *testing.T) {
	parentID := "p1"
	date := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	got := mapToInstance(&taskDTO{
		ID:           "i1",
		UserID:       "user-1",
		ParentTaskID: &parentID,
		Title:        "Workout",
		Reminders:    remindersDTO{Enabled: true, Offsets: []int64{int64(15 * time.Minute)}},
		TaskDate:     &date,
		Status:       "open",
	})

	assert.Equal(t, "p1", got.ParentTaskID)
	assert.Equal(t, "2024-01-03", got.Date.String())
	assert.Equal(t, model.TaskStatusOpen, got.Status)
	assert.Equal(t, []time.Duration{15 * time.Minute}, got.Reminders.Offsets)
}
