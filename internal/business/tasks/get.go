package tasks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/task-planner-backend/internal/business/recurrence"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

func (s *Service) GetTask(ctx context.Context, id string) (*model.ParentTask, error) {
	task, err := s.tasks.GetTaskByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("tasksRepository.GetTaskByID: %w", err)
	}

	return task, nil
}

// PreviewInstances returns what Materialize would write for the window,
// without touching the store.
func (s *Service) PreviewInstances(parent *model.ParentTask, from, to model.Date) []*model.TaskInstance {
	return recurrence.Plan(parent, from, to, s.Today())
}

func (s *Service) GetInstances(ctx context.Context, parentID string, from, to model.Date) ([]*model.TaskInstance, error) {
	instances, err := s.tasks.GetInstances(ctx, s.db, parentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("tasksRepository.GetInstances: %w", err)
	}

	return instances, nil
}
