package recurrence

import (
	"testing"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skip(d model.Date) model.Exception {
	return model.Exception{OriginalDate: d, Action: model.ExceptionSkip}
}

func reschedule(from, to model.Date, blockID ...string) model.Exception {
	e := model.Exception{
		OriginalDate: from,
		Action:       model.ExceptionReschedule,
		NewDate:      mo.Some(to),
	}
	if len(blockID) > 0 {
		e.NewBlockID = mo.Some(blockID[0])
	}
	return e
}

func TestResolve(t *testing.T) {
	d := model.NewDate(2024, 1, 8)

	assert.True(t, Resolve(d, nil).IsAbsent())
	assert.True(t, Resolve(d, []model.Exception{}).IsAbsent())

	exceptions := []model.Exception{
		skip(model.NewDate(2024, 1, 3)),
		reschedule(d, model.NewDate(2024, 1, 9), "evening"),
	}

	got, ok := Resolve(d, exceptions).Get()
	require.True(t, ok)
	assert.Equal(t, model.ExceptionReschedule, got.Action)
	assert.Equal(t, "evening", got.NewBlockID.OrEmpty())

	// only the originally generated date is looked up, never the new one
	assert.True(t, Resolve(model.NewDate(2024, 1, 9), exceptions).IsAbsent())
}

func TestUpsertException_Appends(t *testing.T) {
	rule := model.RecurrenceRule{
		Type:       model.RecurrenceDaily,
		Frequency:  1,
		Exceptions: []model.Exception{skip(model.NewDate(2024, 1, 1))},
	}

	updated, err := UpsertException(rule, skip(model.NewDate(2024, 1, 2)))
	require.NoError(t, err)

	require.Len(t, updated.Exceptions, 2)
	assert.Equal(t, "2024-01-02", updated.Exceptions[1].OriginalDate.String())
	assert.Len(t, rule.Exceptions, 1)
}

func TestUpsertException_ReplacesInPlace(t *testing.T) {
	first := model.NewDate(2024, 1, 1)
	second := model.NewDate(2024, 1, 2)
	third := model.NewDate(2024, 1, 3)
	rule := model.RecurrenceRule{
		Exceptions: []model.Exception{skip(first), skip(second), skip(third)},
	}

	updated, err := UpsertException(rule, reschedule(second, model.NewDate(2024, 1, 5)))
	require.NoError(t, err)

	require.Len(t, updated.Exceptions, 3)
	assert.Equal(t, model.ExceptionReschedule, updated.Exceptions[1].Action)
	assert.True(t, updated.Exceptions[1].OriginalDate.Equal(second))
	assert.True(t, updated.Exceptions[2].OriginalDate.Equal(third))

	// the caller's list is left as it was
	assert.Equal(t, model.ExceptionSkip, rule.Exceptions[1].Action)
}

func TestUpsertException_Invalid(t *testing.T) {
	d := model.NewDate(2024, 1, 8)

	tests := []struct {
		name      string
		exception model.Exception
	}{
		{
			name:      "reschedule without new date",
			exception: model.Exception{OriginalDate: d, Action: model.ExceptionReschedule},
		},
		{
			name: "reschedule with zero new date",
			exception: model.Exception{
				OriginalDate: d,
				Action:       model.ExceptionReschedule,
				NewDate:      mo.Some(model.Date{}),
			},
		},
		{
			name: "skip with new date",
			exception: model.Exception{
				OriginalDate: d,
				Action:       model.ExceptionSkip,
				NewDate:      mo.Some(d.AddDays(1)),
			},
		},
		{
			name:      "missing original date",
			exception: model.Exception{Action: model.ExceptionSkip},
		},
		{
			name:      "unknown action",
			exception: model.Exception{OriginalDate: d, Action: "postpone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := model.RecurrenceRule{Exceptions: []model.Exception{skip(d.AddDays(-1))}}

			updated, err := UpsertException(rule, tt.exception)

			assert.ErrorIs(t, err, model.ErrInvalidRule)
			assert.Len(t, updated.Exceptions, 1)
		})
	}
}
