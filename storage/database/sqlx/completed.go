package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/quiz"
)

const upsertCompleted = `
INSERT INTO completed_items (storage_key, item_ids, updated_at) VALUES (?, ?, ?)
ON CONFLICT (storage_key) DO UPDATE SET item_ids = excluded.item_ids, updated_at = excluded.updated_at`

type completedRepository struct {
	db core.DBExecutor
}

var _ quiz.CompletedRepository = (*completedRepository)(nil)

func NewCompletedRepository(db core.DBExecutor) quiz.CompletedRepository {
	return &completedRepository{db: db}
}

func (repo *completedRepository) GetCompleted(ctx context.Context, key string) (string, error) {
	var value string
	q := repo.db.Rebind("SELECT item_ids FROM completed_items WHERE storage_key = ?")
	if err := repo.db.GetContext(ctx, &value, q, key); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", errors.Wrap(err, "selecting completed items")
	}
	return value, nil
}

func (repo *completedRepository) SetCompleted(ctx context.Context, key, value string) error {
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(upsertCompleted), key, value, time.Now().UTC()); err != nil {
		return errors.Wrap(err, "saving completed items")
	}
	return nil
}
