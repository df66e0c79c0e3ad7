package recurrence

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

// Validate checks that rule is well formed. Matching itself never fails, so
// this is only applied when a rule is written.
func Validate(rule *model.RecurrenceRule) error {
	switch rule.Type {
	case model.RecurrenceDaily, model.RecurrenceCustom:
		if rule.Frequency < 1 {
			return fmt.Errorf("%w: frequency must be positive, got %d", model.ErrInvalidRule, rule.Frequency)
		}
	case model.RecurrenceWeekdays:
	case model.RecurrenceWeekly:
		if len(rule.DaysOfWeek) == 0 {
			return fmt.Errorf("%w: weekly rule needs at least one day of week", model.ErrInvalidRule)
		}
		for _, d := range rule.DaysOfWeek {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("%w: day of week %d out of range", model.ErrInvalidRule, d)
			}
		}
	case model.RecurrenceMonthly:
		if rule.DayOfMonth < 1 || rule.DayOfMonth > 31 {
			return fmt.Errorf("%w: day of month %d out of range", model.ErrInvalidRule, rule.DayOfMonth)
		}
	default:
		return fmt.Errorf("%w: unknown recurrence type %q", model.ErrInvalidRule, rule.Type)
	}

	switch rule.End.Type {
	case model.EndNever, "":
	case model.EndAfter:
		if rule.End.Occurrences < 1 {
			return fmt.Errorf("%w: occurrences must be positive, got %d", model.ErrInvalidRule, rule.End.Occurrences)
		}
	case model.EndOnDate:
		if rule.End.Date.IsZero() {
			return fmt.Errorf("%w: end date must be provided", model.ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: unknown end condition %q", model.ErrInvalidRule, rule.End.Type)
	}

	for _, e := range rule.Exceptions {
		if err := validateException(e); err != nil {
			return err
		}
	}

	return nil
}
