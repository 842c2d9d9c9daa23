package sqlite

import (
	"database/sql"
	"fmt"
	"gocompare_api/config"
	"gocompare_api/pkg/dbconnect"
	"sync"

	_ "modernc.org/sqlite"
)

// SqliteDatabase is the embedded store used for local runs and tests.
type SqliteDatabase struct {
	config.DbConfig
	db *sql.DB
	mu sync.Mutex
}

func NewSqliteConnector(dbConfig config.DbConfig) *SqliteDatabase {
	return &SqliteDatabase{DbConfig: dbConfig}
}

func (s *SqliteDatabase) Connect() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", s.GetConnectionString())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s.db = db
	return s.db, nil
}

func (s *SqliteDatabase) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fmt.Errorf("database connection is not established")
	}
	return s.db.Ping()
}

func (s *SqliteDatabase) Dialect() dbconnect.Dialect {
	return dbconnect.Sqlite
}
