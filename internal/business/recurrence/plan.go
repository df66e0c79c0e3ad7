package recurrence

import (
	"maps"
	"slices"

	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

// Plan returns the instances parent produces over [from, to], in the order
// of the generated dates. Nothing is persisted; ids are left empty.
func Plan(parent *model.ParentTask, from, to, reference model.Date) []*model.TaskInstance {
	rule := &parent.Recurrence
	if !rule.Enabled {
		return nil
	}

	var res []*model.TaskInstance
	for date := range Enumerate(rule, from, to, reference) {
		exception, ok := Resolve(date, rule.Exceptions).Get()
		if !ok {
			res = append(res, newInstance(parent, date, parent.BlockID))
			continue
		}

		switch exception.Action {
		case model.ExceptionSkip:
		case model.ExceptionReschedule:
			res = append(res, newInstance(
				parent,
				exception.NewDate.OrElse(date),
				exception.NewBlockID.OrElse(parent.BlockID),
			))
		default:
			res = append(res, newInstance(parent, date, parent.BlockID))
		}
	}

	return res
}

func newInstance(parent *model.ParentTask, date model.Date, blockID string) *model.TaskInstance {
	info := parent.TaskCreate
	info.BlockID = blockID
	info.Reminders.Offsets = slices.Clone(parent.Reminders.Offsets)
	info.Extra = maps.Clone(parent.Extra)
	if parent.Deadline != nil {
		deadline := *parent.Deadline
		info.Deadline = &deadline
	}

	return &model.TaskInstance{
		ParentTaskID: parent.ID,
		Date:         date,
		Status:       model.TaskStatusOpen,
		TaskCreate:   info,
	}
}
