package tasks

import "github.com/SergeyKozhin/task-planner-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
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
	).
	From(database.TasksTable)
