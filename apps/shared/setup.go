// Package shared wires the dependencies common to the API server and the admin CLI.
package shared

import (
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/course"
	"github.com/Zhalalov2-code/online-course/core/quiz"
	"github.com/Zhalalov2-code/online-course/core/user"
	backendsvc "github.com/Zhalalov2-code/online-course/services/backend"
	logsvc "github.com/Zhalalov2-code/online-course/services/logger"
	"github.com/Zhalalov2-code/online-course/storage/database"
	inmemdb "github.com/Zhalalov2-code/online-course/storage/database/inmem"
	sqlxrepos "github.com/Zhalalov2-code/online-course/storage/database/sqlx"
)

type (
	// Storage holds the completed-tests repository of the configured engine.
	Storage struct {
		Completed quiz.CompletedRepository
		DB        *sqlx.DB // nil for the memory engine
	}

	Services struct {
		Backend core.Backend
		User    user.Service
		Course  course.Service
		Quiz    quiz.Service
		Tracker *quiz.Tracker
	}
)

// NewLogger returns the logger of an app, e.g. NewLogger("API : ", conf).
func NewLogger(prefix string, conf *core.Config) core.Logger {
	return logsvc.NewLogger(logsvc.New(os.Stdout, prefix), conf)
}

// SetUpDB creates, opens and migrates the configured database.
func SetUpDB(conf core.DatabaseConfig) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db.DB, conf.Engine, "up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func OpenStorage(conf core.DatabaseConfig) (*Storage, error) {
	if conf.Engine == database.EngineMemory {
		db, err := inmemdb.Open()
		if err != nil {
			return nil, errors.Wrap(err, "opening in-memory database")
		}
		return &Storage{Completed: inmemdb.NewCompletedRepository(db)}, nil
	}

	db, err := SetUpDB(conf)
	if err != nil {
		return nil, errors.Wrap(err, "setting up database")
	}
	return &Storage{Completed: sqlxrepos.NewCompletedRepository(db), DB: db}, nil
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func NewServices(conf *core.Config, logger core.Logger, storage *Storage) *Services {
	backend := backendsvc.NewRestService(conf, logger)
	courseSvc := course.NewService(backend, logger)
	tracker := quiz.NewTracker(storage.Completed)
	return &Services{
		Backend: backend,
		User:    user.NewService(backend, logger),
		Course:  courseSvc,
		Quiz:    quiz.NewService(backend, courseSvc, tracker, logger),
		Tracker: tracker,
	}
}
