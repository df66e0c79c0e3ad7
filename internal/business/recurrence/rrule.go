package recurrence

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/teambition/rrule-go"
)

var weekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// RuleOption translates rule into RFC 5545 recurrence options starting at
// dtstart. Interval rules are anchored at reference so the produced RRULE
// lands on the same days Matches does. Exceptions are not part of the rule.
func RuleOption(rule *model.RecurrenceRule, dtstart, reference model.Date) (*rrule.ROption, error) {
	opt := &rrule.ROption{
		Dtstart: dtstart.Time(time.UTC),
	}

	switch rule.Type {
	case model.RecurrenceDaily, model.RecurrenceCustom:
		if rule.Frequency < 1 {
			return nil, fmt.Errorf("%w: frequency must be positive", model.ErrInvalidRule)
		}
		opt.Freq = rrule.DAILY
		opt.Interval = rule.Frequency
		opt.Dtstart = firstOnOrAfter(rule, dtstart, reference).Time(time.UTC)
	case model.RecurrenceWeekdays:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
	case model.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range rule.DaysOfWeek {
			wd, ok := weekdays[d]
			if !ok {
				return nil, fmt.Errorf("%w: day of week %d out of range", model.ErrInvalidRule, d)
			}
			opt.Byweekday = append(opt.Byweekday, wd)
		}
	case model.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{rule.DayOfMonth}
	default:
		return nil, fmt.Errorf("%w: unknown recurrence type %q", model.ErrInvalidRule, rule.Type)
	}

	switch rule.End.Type {
	case model.EndAfter:
		opt.Count = rule.End.Occurrences
	case model.EndOnDate:
		opt.Until = rule.End.Date.Time(time.UTC)
	}

	if _, err := rrule.NewRRule(*opt); err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	return opt, nil
}

// firstOnOrAfter returns the first day not before from that lies on the
// reference-anchored interval grid.
func firstOnOrAfter(rule *model.RecurrenceRule, from, reference model.Date) model.Date {
	offset := from.DaysSince(reference) % rule.Frequency
	if offset == 0 {
		return from
	}
	if offset < 0 {
		offset += rule.Frequency
	}

	return from.AddDays(rule.Frequency - offset)
}
