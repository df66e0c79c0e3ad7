package recurrence

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	reference := model.NewDate(2024, 1, 10)

	tests := []struct {
		name string
		rule model.RecurrenceRule
		date model.Date
		want bool
	}{
		{
			name: "daily on reference",
			rule: model.RecurrenceRule{Type: model.RecurrenceDaily, Frequency: 1},
			date: reference,
			want: true,
		},
		{
			name: "every third day forward",
			rule: model.RecurrenceRule{Type: model.RecurrenceDaily, Frequency: 3},
			date: model.NewDate(2024, 1, 16),
			want: true,
		},
		{
			name: "every third day off grid",
			rule: model.RecurrenceRule{Type: model.RecurrenceDaily, Frequency: 3},
			date: model.NewDate(2024, 1, 14),
			want: false,
		},
		{
			name: "every third day before reference",
			rule: model.RecurrenceRule{Type: model.RecurrenceDaily, Frequency: 3},
			date: model.NewDate(2024, 1, 4),
			want: true,
		},
		{
			name: "custom behaves like daily",
			rule: model.RecurrenceRule{Type: model.RecurrenceCustom, Frequency: 7},
			date: model.NewDate(2024, 1, 24),
			want: true,
		},
		{
			name: "zero frequency never matches",
			rule: model.RecurrenceRule{Type: model.RecurrenceDaily},
			date: reference,
			want: false,
		},
		{
			name: "weekdays on friday",
			rule: model.RecurrenceRule{Type: model.RecurrenceWeekdays},
			date: model.NewDate(2024, 1, 12),
			want: true,
		},
		{
			name: "weekdays on saturday",
			rule: model.RecurrenceRule{Type: model.RecurrenceWeekdays},
			date: model.NewDate(2024, 1, 13),
			want: false,
		},
		{
			name: "weekly member",
			rule: model.RecurrenceRule{Type: model.RecurrenceWeekly, DaysOfWeek: []time.Weekday{time.Sunday, time.Wednesday}},
			date: model.NewDate(2024, 1, 14),
			want: true,
		},
		{
			name: "weekly non member",
			rule: model.RecurrenceRule{Type: model.RecurrenceWeekly, DaysOfWeek: []time.Weekday{time.Sunday, time.Wednesday}},
			date: model.NewDate(2024, 1, 15),
			want: false,
		},
		{
			name: "monthly day matches",
			rule: model.RecurrenceRule{Type: model.RecurrenceMonthly, DayOfMonth: 15},
			date: model.NewDate(2024, 2, 15),
			want: true,
		},
		{
			name: "monthly 31 in a 30 day month is not clamped",
			rule: model.RecurrenceRule{Type: model.RecurrenceMonthly, DayOfMonth: 31},
			date: model.NewDate(2024, 4, 30),
			want: false,
		},
		{
			name: "unknown type",
			rule: model.RecurrenceRule{Type: "yearly", Frequency: 1},
			date: reference,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.date, &tt.rule, reference))
		})
	}
}
