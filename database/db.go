package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// schema is applied as a single batch on every start. It is additive only.
// Foreign keys are declared but not enforced.
const schema = `
CREATE TABLE IF NOT EXISTS user (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	g_id TEXT UNIQUE,
	username TEXT,
	email TEXT UNIQUE,
	profile_pic TEXT
);

CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	age INTEGER,
	weight INTEGER,
	height INTEGER,
	skill_level TEXT,
	FOREIGN KEY(user_id) REFERENCES user(id)
);

CREATE TABLE IF NOT EXISTS exercise (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	muscle_group TEXT,
	api_id TEXT UNIQUE
);

CREATE TABLE IF NOT EXISTS workoutPlan (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	name TEXT NOT NULL,
	FOREIGN KEY(user_id) REFERENCES user(id)
);

CREATE TABLE IF NOT EXISTS workoutPlanExercises (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	workout_plan_id INTEGER,
	exercise_id INTEGER,
	day TEXT NOT NULL,
	sets INTEGER NOT NULL,
	reps INTEGER NOT NULL,
	FOREIGN KEY(workout_plan_id) REFERENCES workoutPlan(id),
	FOREIGN KEY(exercise_id) REFERENCES exercise(id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_profile_user ON profile(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_exercise_name ON exercise(name);
CREATE UNIQUE INDEX IF NOT EXISTS idx_workout_plan_user_name ON workoutPlan(user_id, name);
CREATE INDEX IF NOT EXISTS idx_workout_plan_exercises_day ON workoutPlanExercises(day);
CREATE INDEX IF NOT EXISTS idx_workout_plan_exercises_exercise ON workoutPlanExercises(exercise_id);
`

type DB struct {
	*sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate creates the five application tables and their indexes.
// It is idempotent and safe to run on every start.
func (db *DB) Migrate() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) Close() error {
	return db.DB.Close()
}
