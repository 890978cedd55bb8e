// Package db opens the relational database used for the local symbol directory.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_agent/internal/feature/market/domain/entity"
)

// DefaultSQLitePath is used when neither DATABASE_URL nor SQLITE_PATH is set.
const DefaultSQLitePath = "stock_agent.db"

// Opener abstracts gorm.Open so connection retry logic can be tested.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry repeatedly attempts to open a connection until it
// succeeds or the timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// SQLitePathFromEnv returns the SQLite file path, falling back to the default.
func SQLitePathFromEnv() string {
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		return path
	}
	return DefaultSQLitePath
}

// OpenDB opens the database connection.
// When DATABASE_URL is set a PostgreSQL connection is used; otherwise the
// embedded SQLite file at SQLITE_PATH (or DefaultSQLitePath) is opened.
func OpenDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")

	var (
		db  *gorm.DB
		err error
	)

	if dsn != "" {
		db, err = ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		path := SQLitePathFromEnv()
		db, err = gorm.Open(gsqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite at %s: %v", path, err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") != "false" {
		if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
