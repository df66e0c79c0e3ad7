package recurrence

import (
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

// Matches reports whether date is an occurrence of rule. Interval rules
// (daily, custom) count days from reference, so callers pass the same
// reference for a whole window.
func Matches(date model.Date, rule *model.RecurrenceRule, reference model.Date) bool {
	switch rule.Type {
	case model.RecurrenceDaily, model.RecurrenceCustom:
		if rule.Frequency < 1 {
			return false
		}
		return date.DaysSince(reference)%rule.Frequency == 0
	case model.RecurrenceWeekdays:
		wd := date.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case model.RecurrenceWeekly:
		wd := date.Weekday()
		for _, d := range rule.DaysOfWeek {
			if d == wd {
				return true
			}
		}
		return false
	case model.RecurrenceMonthly:
		// no clamping: day 31 never occurs in a 30-day month
		return date.Day() == rule.DayOfMonth
	default:
		return false
	}
}
