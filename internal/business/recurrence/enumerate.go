package recurrence

import (
	"iter"
	"slices"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

// Enumerate yields, in ascending order, the dates in [from, to] matching rule,
// cut short by the rule's end condition. The sequence holds no state between
// iterations and can be ranged over any number of times.
func Enumerate(rule *model.RecurrenceRule, from, to, reference model.Date) iter.Seq[model.Date] {
	end := to
	if rule.End.Type == model.EndOnDate && !rule.End.Date.IsZero() && rule.End.Date.Before(end) {
		end = rule.End.Date
	}

	return func(yield func(model.Date) bool) {
		count := 0
		for d := from; !d.After(end); d = d.AddDays(1) {
			if rule.End.Type == model.EndAfter && count >= rule.End.Occurrences {
				return
			}

			if !Matches(d, rule, reference) {
				continue
			}

			count++
			if !yield(d) {
				return
			}
		}
	}
}

// Dates collects Enumerate into a slice.
func Dates(rule *model.RecurrenceRule, from, to, reference model.Date) []model.Date {
	return slices.Collect(Enumerate(rule, from, to, reference))
}
