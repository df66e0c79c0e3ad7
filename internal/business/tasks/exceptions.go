package tasks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/task-planner-backend/internal/business/recurrence"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

// AddException records a skip or reschedule for one generated date of the
// task and persists the new exception list. The read and the write share a
// transaction holding the task row, so concurrent edits are applied one
// after another.
func (s *Service) AddException(ctx context.Context, taskID string, exception model.Exception) (*model.ParentTask, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w: %w", model.ErrStore, err)
	}
	defer tx.Rollback(ctx)

	task, err := s.tasks.GetTaskByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	rule, err := recurrence.UpsertException(task.Recurrence, exception)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.UpdateExceptions(ctx, tx, taskID, rule.Exceptions); err != nil {
		return nil, fmt.Errorf("tasksRepository.UpdateExceptions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w: %w", model.ErrStore, err)
	}

	task.Recurrence = rule
	return task, nil
}
