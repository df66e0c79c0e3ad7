package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/task-planner-backend/internal/database"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/jackc/pgx/v4"
	"github.com/samber/mo"
)

var enabledRecurrence = sq.Expr("coalesce((recurrence->>'enabled')::boolean, false)")

func (*Repository) GetTaskByID(ctx context.Context, q database.Queryable, id string) (*model.ParentTask, error) {
	return getTask(ctx, q, baseQuery.Where(sq.Eq{"id": id}))
}

// GetTaskByIDForUpdate locks the row until the surrounding transaction ends.
func (*Repository) GetTaskByIDForUpdate(ctx context.Context, q database.Queryable, id string) (*model.ParentTask, error) {
	return getTask(ctx, q, baseQuery.Where(sq.Eq{"id": id}).Suffix("for update"))
}

func getTask(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) (*model.ParentTask, error) {
	qb = qb.Where(sq.NotEq{"recurrence": nil})

	dto := &taskDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	return mapToParentTask(dto)
}

// GetEnabledRecurringTasks returns one result per stored task. A row that
// cannot be mapped is reported in its own result and does not fail the list.
func (*Repository) GetEnabledRecurringTasks(ctx context.Context, q database.Queryable, userID string) ([]mo.Result[*model.ParentTask], error) {
	qb := baseQuery.
		Where(sq.Eq{"user_id": userID}).
		Where(enabledRecurrence).
		OrderBy("created_at", "id")

	var dtos []*taskDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	res := make([]mo.Result[*model.ParentTask], len(dtos))
	for i, d := range dtos {
		task, err := mapToParentTask(d)
		res[i] = mo.TupleToResult(task, err)
	}

	return res, nil
}

func (*Repository) GetRecurringTaskOwners(ctx context.Context, q database.Queryable) ([]string, error) {
	qb := database.PSQL.
		Select("user_id").
		Distinct().
		From(database.TasksTable).
		Where(enabledRecurrence).
		OrderBy("user_id")

	var ids []string
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	return ids, nil
}

func (*Repository) GetInstance(ctx context.Context, q database.Queryable, parentID string, date model.Date) (*model.TaskInstance, error) {
	qb := baseQuery.
		Where(sq.Eq{"parent_task_id": parentID, "task_date": date.Time(time.UTC)}).
		OrderBy("created_at").
		Limit(1)

	dto := &taskDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	return mapToInstance(dto), nil
}

func (*Repository) GetInstances(ctx context.Context, q database.Queryable, parentID string, from, to model.Date) ([]*model.TaskInstance, error) {
	qb := baseQuery.
		Where(sq.Eq{"parent_task_id": parentID}).
		Where(sq.GtOrEq{"task_date": from.Time(time.UTC)}).
		Where(sq.LtOrEq{"task_date": to.Time(time.UTC)}).
		OrderBy("task_date", "created_at")

	var dtos []*taskDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w: %w", model.ErrStore, err)
	}

	res := make([]*model.TaskInstance, len(dtos))
	for i, d := range dtos {
		res[i] = mapToInstance(d)
	}

	return res, nil
}
