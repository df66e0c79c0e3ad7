// Package calendar renders recurring tasks as iCalendar VTODO components.
package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/business/recurrence"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/emersion/go-ical"
)

const productID = "-//task-planner//recurring tasks//EN"

// Encode writes parent as a master VTODO carrying its RRULE and one EXDATE per
// exception, a VTODO for every rescheduled occurrence not yet materialized,
// and a VTODO for every materialized instance. dtstart anchors the RRULE;
// reference is the day interval rules count from.
func Encode(w io.Writer, parent *model.ParentTask, instances []*model.TaskInstance, dtstart, reference model.Date, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	master, err := masterComponent(parent, dtstart, reference, stamp)
	if err != nil {
		return err
	}
	cal.Children = append(cal.Children, master)

	materialized := make(map[string]struct{}, len(instances))
	for _, i := range instances {
		if i.ParentTaskID == parent.ID {
			materialized[i.Date.String()] = struct{}{}
		}
	}

	for _, e := range parent.Recurrence.Exceptions {
		newDate, ok := e.NewDate.Get()
		if e.Action != model.ExceptionReschedule || !ok {
			continue
		}
		// the instance component below already stands for it
		if _, ok := materialized[newDate.String()]; ok {
			continue
		}

		todo := todoComponent(fmt.Sprintf("%v-%v", parent.ID, e.OriginalDate), &parent.TaskCreate, stamp)
		todo.Props.SetDate(ical.PropDateTimeStart, newDate.Time(time.UTC))
		todo.Props.SetText(ical.PropRelatedTo, parent.ID)
		if blockID, ok := e.NewBlockID.Get(); ok {
			todo.Props.SetText(ical.PropCategories, blockID)
		}
		cal.Children = append(cal.Children, todo)
	}

	for _, i := range instances {
		todo := todoComponent(i.ID, &i.TaskCreate, stamp)
		todo.Props.SetDate(ical.PropDateTimeStart, i.Date.Time(time.UTC))
		todo.Props.SetText(ical.PropStatus, todoStatus(i.Status))
		todo.Props.SetText(ical.PropRelatedTo, i.ParentTaskID)
		cal.Children = append(cal.Children, todo)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}

	return nil
}

func masterComponent(parent *model.ParentTask, dtstart, reference model.Date, stamp time.Time) (*ical.Component, error) {
	opt, err := recurrence.RuleOption(&parent.Recurrence, dtstart, reference)
	if err != nil {
		return nil, fmt.Errorf("translate rule of task %v: %w", parent.ID, err)
	}

	todo := todoComponent(parent.ID, &parent.TaskCreate, stamp)
	todo.Props.SetDate(ical.PropDateTimeStart, opt.Dtstart)
	todo.Props.SetRecurrenceRule(opt)

	for _, e := range parent.Recurrence.Exceptions {
		exdate := ical.NewProp(ical.PropExceptionDates)
		exdate.SetDate(e.OriginalDate.Time(time.UTC))
		todo.Props.Add(exdate)
	}

	return todo, nil
}

func todoComponent(uid string, info *model.TaskCreate, stamp time.Time) *ical.Component {
	todo := ical.NewComponent(ical.CompToDo)
	todo.Props.SetText(ical.PropUID, uid)
	todo.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	todo.Props.SetText(ical.PropSummary, info.Title)
	if info.Description != "" {
		todo.Props.SetText(ical.PropDescription, info.Description)
	}
	if info.Deadline != nil {
		todo.Props.SetDateTime(ical.PropDue, info.Deadline.UTC())
	}
	if info.BlockID != "" {
		todo.Props.SetText(ical.PropCategories, info.BlockID)
	}

	return todo
}

func todoStatus(s model.TaskStatus) string {
	if s == model.TaskStatusDone {
		return "COMPLETED"
	}
	return "NEEDS-ACTION"
}
