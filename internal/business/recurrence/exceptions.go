package recurrence

import (
	"fmt"
	"slices"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/samber/mo"
)

// Resolve finds the exception recorded for an originally generated date.
func Resolve(date model.Date, exceptions []model.Exception) mo.Option[model.Exception] {
	for _, e := range exceptions {
		if e.OriginalDate.Equal(date) {
			return mo.Some(e)
		}
	}

	return mo.None[model.Exception]()
}

// UpsertException returns a copy of rule whose exception list contains e.
// An existing exception for the same original date is replaced in place,
// otherwise e is appended. rule itself is never modified.
func UpsertException(rule model.RecurrenceRule, e model.Exception) (model.RecurrenceRule, error) {
	if err := validateException(e); err != nil {
		return rule, err
	}

	exceptions := slices.Clone(rule.Exceptions)
	idx := slices.IndexFunc(exceptions, func(old model.Exception) bool {
		return old.OriginalDate.Equal(e.OriginalDate)
	})
	if idx >= 0 {
		exceptions[idx] = e
	} else {
		exceptions = append(exceptions, e)
	}

	rule.Exceptions = exceptions
	rule.DaysOfWeek = slices.Clone(rule.DaysOfWeek)
	return rule, nil
}

func validateException(e model.Exception) error {
	if e.OriginalDate.IsZero() {
		return fmt.Errorf("%w: exception original date must be provided", model.ErrInvalidRule)
	}

	switch e.Action {
	case model.ExceptionSkip:
		if e.NewDate.IsPresent() || e.NewBlockID.IsPresent() {
			return fmt.Errorf("%w: skip exception for %v must not carry a new date or block", model.ErrInvalidRule, e.OriginalDate)
		}
	case model.ExceptionReschedule:
		newDate, ok := e.NewDate.Get()
		if !ok || newDate.IsZero() {
			return fmt.Errorf("%w: reschedule exception for %v requires a new date", model.ErrInvalidRule, e.OriginalDate)
		}
	default:
		return fmt.Errorf("%w: unknown exception action %q", model.ErrInvalidRule, e.Action)
	}

	return nil
}
