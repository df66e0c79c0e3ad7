package tasks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/task-planner-backend/internal/business/recurrence"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

func (s *Service) CreateTask(ctx context.Context, info *model.TaskCreate, rule model.RecurrenceRule) (*model.ParentTask, error) {
	if err := recurrence.Validate(&rule); err != nil {
		return nil, err
	}

	task := &model.ParentTask{
		ID:         s.newID(),
		Recurrence: rule,
		TaskCreate: *info,
	}

	if err := s.tasks.CreateTask(ctx, s.db, task); err != nil {
		return nil, fmt.Errorf("tasksRepository.CreateTask: %w", err)
	}

	return task, nil
}
