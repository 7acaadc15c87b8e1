package inmemdb

import (
	"context"

	"github.com/Zhalalov2-code/online-course/core/quiz"
)

type completedRepository struct {
	db *completedTable
}

var _ quiz.CompletedRepository = (*completedRepository)(nil)

func NewCompletedRepository(db *DB) quiz.CompletedRepository {
	return &completedRepository{db: db.completed}
}

func (repo *completedRepository) GetCompleted(_ context.Context, key string) (string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.table[key], nil
}

func (repo *completedRepository) SetCompleted(_ context.Context, key, value string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[key] = value
	return nil
}
