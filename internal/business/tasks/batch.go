package tasks

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type RunReport struct {
	UserID    string `json:"user_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Tasks     int    `json:"tasks"`
	Instances int    `json:"instances"`
	Failed    int    `json:"failed"`
}

// RunForUser materializes every enabled recurring task of userID over
// [today, today+lookaheadDays], with today as the reference day for all of
// them. Tasks are processed independently: a failing or unreadable task is
// logged and counted, the others still run.
func (s *Service) RunForUser(ctx context.Context, userID string, lookaheadDays int) *RunReport {
	from := s.Today()
	to := from.AddDays(lookaheadDays)

	report := &RunReport{
		UserID: userID,
		From:   from.String(),
		To:     to.String(),
	}

	rows, err := s.tasks.GetEnabledRecurringTasks(ctx, s.db, userID)
	if err != nil {
		s.logger.Errorw("failed to list recurring tasks", "user_id", userID, "err", err)
		return report
	}
	report.Tasks = len(rows)

	var mu sync.Mutex
	g := &errgroup.Group{}
	g.SetLimit(s.workers)

	for _, row := range rows {
		parent, err := row.Get()
		if err != nil {
			mu.Lock()
			report.Failed++
			mu.Unlock()

			s.logger.Errorw("failed to read recurring task", "user_id", userID, "err", err)
			continue
		}

		g.Go(func() error {
			created, err := s.materialize(ctx, parent, from, to, from)

			mu.Lock()
			defer mu.Unlock()

			report.Instances += len(created)
			if err != nil {
				report.Failed++
				s.logger.Errorw("failed to materialize task",
					"user_id", userID,
					"task_id", parent.ID,
					"created", len(created),
					"err", err,
				)
			}

			return nil
		})
	}
	_ = g.Wait()

	s.logger.Infow("materialized recurring tasks",
		"user_id", userID,
		"from", report.From,
		"to", report.To,
		"tasks", report.Tasks,
		"instances", report.Instances,
		"failed", report.Failed,
	)

	return report
}

// RecurringTaskOwners lists the users a scheduled run has to visit.
func (s *Service) RecurringTaskOwners(ctx context.Context) ([]string, error) {
	return s.tasks.GetRecurringTaskOwners(ctx, s.db)
}
