package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/database"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

var insertColumns = []string{
	"id",
	"user_id",
	"parent_task_id",
	"title",
	"description",
	"deadline",
	"reminders",
	"block_id",
	"extra",
	"task_date",
	"status",
	"recurrence",
}

func (*Repository) CreateTask(ctx context.Context, q database.Queryable, task *model.ParentTask) error {
	qb := database.PSQL.
		Insert(database.TasksTable).
		Columns(insertColumns...).
		Values(
			task.ID,
			task.UserID,
			nil,
			task.Title,
			task.Description,
			task.Deadline,
			mapFromReminders(task.Reminders),
			task.BlockID,
			extraOrEmpty(task.Extra),
			nil,
			model.TaskStatusOpen,
			mapFromRecurrence(&task.Recurrence),
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	return nil
}

func (*Repository) CreateInstance(ctx context.Context, q database.Queryable, instance *model.TaskInstance) (string, error) {
	qb := database.PSQL.
		Insert(database.TasksTable).
		Columns(insertColumns...).
		Values(
			instance.ID,
			instance.UserID,
			instance.ParentTaskID,
			instance.Title,
			instance.Description,
			instance.Deadline,
			mapFromReminders(instance.Reminders),
			instance.BlockID,
			extraOrEmpty(instance.Extra),
			instance.Date.Time(time.UTC),
			instance.Status,
			nil,
		).
		Suffix("returning id")

	var id string
	if err := q.Get(ctx, &id, qb); err != nil {
		return "", fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	return id, nil
}
