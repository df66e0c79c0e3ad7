package model

import (
	"time"

	"github.com/samber/mo"
)

type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

type ReminderSettings struct {
	Enabled bool
	Offsets []time.Duration
}

// TaskCreate holds the fields a parent shares with every instance cloned from it.
type TaskCreate struct {
	UserID      string
	Title       string
	Description string
	Deadline    *time.Time
	Reminders   ReminderSettings
	BlockID     string
	Extra       map[string]interface{}
}

type ParentTask struct {
	ID         string
	Recurrence RecurrenceRule
	TaskCreate
}

// TaskInstance is one materialized occurrence. It has no recurrence of its own.
type TaskInstance struct {
	ID           string
	ParentTaskID string
	Date         Date
	Status       TaskStatus
	TaskCreate
}

type RecurrenceType string

const (
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekdays RecurrenceType = "weekdays"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
	RecurrenceCustom   RecurrenceType = "custom"
)

type EndType string

const (
	EndNever  EndType = "never"
	EndAfter  EndType = "after"
	EndOnDate EndType = "on_date"
)

type EndCondition struct {
	Type        EndType
	Occurrences int
	Date        Date
}

type RecurrenceRule struct {
	Enabled    bool
	Type       RecurrenceType
	Frequency  int
	DaysOfWeek []time.Weekday
	DayOfMonth int
	End        EndCondition
	Exceptions []Exception
}

type ExceptionAction string

const (
	ExceptionSkip       ExceptionAction = "skip"
	ExceptionReschedule ExceptionAction = "reschedule"
)

type Exception struct {
	OriginalDate Date
	Action       ExceptionAction
	NewDate      mo.Option[Date]
	NewBlockID   mo.Option[string]
}
