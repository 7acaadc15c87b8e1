package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/fs"
)

// Supported engines, named after their database/sql drivers.
const (
	EngineSqlite   = "sqlite3"
	EnginePostgres = "postgres"

	// EngineMemory keeps everything in process; it has no database/sql driver.
	EngineMemory = "memory"
)

func dataSourceName(dbName string, conf core.DatabaseConfig) string {
	sslMode := "require"
	if conf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Engine,
		User:     url.UserPassword(conf.User, conf.Password),
		Host:     conf.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Open connects to the configured database.
func Open(conf core.DatabaseConfig) (*sqlx.DB, error) {
	switch conf.Engine {
	case EngineSqlite:
		path := conf.Path
		if path == "" {
			path = ":memory:"
		}
		db, err := sqlx.Open(EngineSqlite, path+"?_busy_timeout=5000")
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite database")
		}
		if path == ":memory:" {
			// every connection to :memory: is a distinct database
			db.SetMaxOpenConns(1)
		}
		return db, nil
	case EnginePostgres:
		db, err := sqlx.Open(EnginePostgres, dataSourceName(conf.Name, conf))
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres database")
		}
		return db, nil
	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Engine)
	}
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func createDB(db *sql.DB, name string) error {
	// check if DB exists
	var exists bool
	if err := db.QueryRow("SELECT true FROM pg_database WHERE datname = $1", name).Scan(&exists); err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "checking DB")
	}

	// create DB if not exist
	if !exists {
		if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %q", name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the postgres database. sqlite databases are created on open.
func CreateIfNotExist(conf core.DatabaseConfig) error {
	if conf.Engine != EnginePostgres {
		return nil
	}

	db, err := sql.Open(EnginePostgres, dataSourceName("postgres", conf))
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	if err = ping(db); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	return createDB(db, conf.Name)
}

// Migrate runs a goose command (up, down, status, version...) with the embedded migrations.
func Migrate(db *sql.DB, engine, command string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(engine); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := goose.Run(command, db, "migrations", args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
