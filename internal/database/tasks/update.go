package tasks

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/task-planner-backend/internal/database"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

func (*Repository) UpdateExceptions(ctx context.Context, q database.Queryable, taskID string, exceptions []model.Exception) error {
	qb := database.PSQL.
		Update(database.TasksTable).
		Set("recurrence", sq.Expr("jsonb_set(recurrence, '{exceptions}', ?::jsonb)", mapFromExceptions(exceptions))).
		Where(sq.Eq{"id": taskID}).
		Where(sq.NotEq{"recurrence": nil})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
