package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/SergeyKozhin/task-planner-backend/internal/database"
	"github.com/SergeyKozhin/task-planner-backend/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/samber/mo"
)

type fakeDB struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (*fakeDB) Exec(context.Context, database.Sqlizer) (pgconn.CommandTag, error) {
	return nil, nil
}

func (*fakeDB) Get(context.Context, interface{}, database.Sqlizer) error {
	return nil
}

func (*fakeDB) Select(context.Context, interface{}, database.Sqlizer) error {
	return nil
}

func (*fakeDB) ExecRaw(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

func (*fakeDB) GetPool(context.Context) *pgxpool.Pool {
	return nil
}

func (db *fakeDB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return &fakeTx{fakeDB: db}, nil
}

type fakeTx struct {
	*fakeDB
	done bool
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	tx.done = true
	tx.commits++
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if !tx.done {
		tx.rollbacks++
	}
	return nil
}

type fakeRepo struct {
	mu sync.Mutex

	tasks     map[string]*model.ParentTask
	instances []*model.TaskInstance

	// failCreateAfter makes CreateInstance fail for a parent once that many
	// instances of it have been written.
	failCreateAfter map[string]int
	failList        error
	failUpdate      error

	// unreadable tasks come back from listing as failed results.
	unreadable map[string]bool
}

func newFakeRepo(tasks ...*model.ParentTask) *fakeRepo {
	r := &fakeRepo{
		tasks:           make(map[string]*model.ParentTask),
		failCreateAfter: make(map[string]int),
		unreadable:      make(map[string]bool),
	}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *fakeRepo) CreateTask(_ context.Context, _ database.Queryable, task *model.ParentTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = task
	return nil
}

func (r *fakeRepo) CreateInstance(_ context.Context, _ database.Queryable, instance *model.TaskInstance) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit, ok := r.failCreateAfter[instance.ParentTaskID]; ok && r.countLocked(instance.ParentTaskID) >= limit {
		return "", fmt.Errorf("SQL request: %w: connection reset", model.ErrStore)
	}

	r.instances = append(r.instances, instance)
	return instance.ID, nil
}

func (r *fakeRepo) countLocked(parentID string) int {
	n := 0
	for _, i := range r.instances {
		if i.ParentTaskID == parentID {
			n++
		}
	}
	return n
}

func (r *fakeRepo) count(parentID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.countLocked(parentID)
}

func (r *fakeRepo) GetTaskByID(_ context.Context, _ database.Queryable, id string) (*model.ParentTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) GetTaskByIDForUpdate(ctx context.Context, q database.Queryable, id string) (*model.ParentTask, error) {
	return r.GetTaskByID(ctx, q, id)
}

func (r *fakeRepo) GetEnabledRecurringTasks(_ context.Context, _ database.Queryable, userID string) ([]mo.Result[*model.ParentTask], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failList != nil {
		return nil, r.failList
	}

	var res []mo.Result[*model.ParentTask]
	for _, t := range r.tasks {
		if t.UserID != userID || !t.Recurrence.Enabled {
			continue
		}
		if r.unreadable[t.ID] {
			res = append(res, mo.Err[*model.ParentTask](fmt.Errorf("map recurrence of task %v: bad date", t.ID)))
			continue
		}
		res = append(res, mo.Ok(t))
	}
	return res, nil
}

func (r *fakeRepo) GetRecurringTaskOwners(context.Context, database.Queryable) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	var res []string
	for _, t := range r.tasks {
		if _, ok := seen[t.UserID]; !ok && t.Recurrence.Enabled {
			seen[t.UserID] = struct{}{}
			res = append(res, t.UserID)
		}
	}
	return res, nil
}

func (r *fakeRepo) GetInstance(_ context.Context, _ database.Queryable, parentID string, date model.Date) (*model.TaskInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, i := range r.instances {
		if i.ParentTaskID == parentID && i.Date.Equal(date) {
			return i, nil
		}
	}
	return nil, model.ErrNoRecord
}

func (r *fakeRepo) GetInstances(_ context.Context, _ database.Queryable, parentID string, from, to model.Date) ([]*model.TaskInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []*model.TaskInstance
	for _, i := range r.instances {
		if i.ParentTaskID == parentID && !i.Date.Before(from) && !i.Date.After(to) {
			res = append(res, i)
		}
	}
	return res, nil
}

func (r *fakeRepo) UpdateExceptions(_ context.Context, _ database.Queryable, taskID string, exceptions []model.Exception) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failUpdate != nil {
		return r.failUpdate
	}

	t, ok := r.tasks[taskID]
	if !ok {
		return model.ErrNoRecord
	}
	updated := *t
	updated.Recurrence.Exceptions = exceptions
	r.tasks[taskID] = &updated
	return nil
}
