package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/task-planner-backend/internal/business/recurrence"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
)

// Materialize writes one instance per planned occurrence of parent in
// [from, to]. Writes happen in date order and the first failure stops the
// window; the instances written before it are returned along with the error.
func (s *Service) Materialize(ctx context.Context, parent *model.ParentTask, from, to model.Date) ([]*model.TaskInstance, error) {
	return s.materialize(ctx, parent, from, to, s.Today())
}

// materialize plans against an explicit reference day so that every task of
// one batch run shares it.
func (s *Service) materialize(ctx context.Context, parent *model.ParentTask, from, to, reference model.Date) ([]*model.TaskInstance, error) {
	planned := recurrence.Plan(parent, from, to, reference)

	created := make([]*model.TaskInstance, 0, len(planned))
	for _, instance := range planned {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		if s.dedupe {
			exists, err := s.instanceExists(ctx, parent.ID, instance.Date)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}
		}

		instance.ID = s.newID()
		id, err := s.tasks.CreateInstance(ctx, s.db, instance)
		if err != nil {
			return created, fmt.Errorf("tasksRepository.CreateInstance %v: %w", instance.Date, err)
		}
		instance.ID = id

		created = append(created, instance)
	}

	return created, nil
}

func (s *Service) instanceExists(ctx context.Context, parentID string, date model.Date) (bool, error) {
	_, err := s.tasks.GetInstance(ctx, s.db, parentID, date)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrNoRecord):
		return false, nil
	default:
		return false, fmt.Errorf("tasksRepository.GetInstance %v: %w", date, err)
	}
}
