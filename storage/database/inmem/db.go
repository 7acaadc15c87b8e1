package inmemdb

import "sync"

type (
	DB struct {
		completed *completedTable
	}

	completedTable struct {
		sync.RWMutex
		table map[string]string
	}
)

func Open() (*DB, error) {
	db := &DB{
		completed: &completedTable{table: make(map[string]string)},
	}
	return db, nil
}
