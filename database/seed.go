package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Starter data written for a newly signed-in user.
const (
	SeedPlanName   = "My First Plan"
	SeedDay        = "Monday"
	SeedSets       = 3
	SeedReps       = 10
	SeedSkillLevel = "Intermediate"
	seedAge        = 21
	seedWeight     = 85
	seedHeight     = 190
)

type seedExercise struct {
	name        string
	description string
	muscleGroup string
}

var seedExercises = []seedExercise{
	{name: "Push-Up", description: "Bodyweight chest exercise", muscleGroup: "Chest"},
	{name: "Squat", description: "Leg strength exercise", muscleGroup: "Legs"},
	{name: "Plank", description: "Core stability exercise", muscleGroup: "Core"},
}

type Seeder struct {
	q      querier
	logger *slog.Logger
}

func NewSeeder(db *DB, logger *slog.Logger) *Seeder {
	return &Seeder{q: db, logger: logger}
}

// SeedUser populates starter rows for a user. Every step ignores rows that
// already exist, so running it again leaves the database unchanged. Steps
// are separate statements and are not rolled back on failure.
func (s *Seeder) SeedUser(ctx context.Context, gID, email, username string, profilePic *string) error {
	if _, err := s.q.ExecContext(ctx, `
		INSERT OR IGNORE INTO user (g_id, email, username, profile_pic)
		VALUES (?, ?, ?, ?)
	`, gID, email, username, profilePic); err != nil {
		return s.fail("user", err)
	}

	var userID int64
	err := s.q.QueryRowContext(ctx, "SELECT id FROM user WHERE g_id = ?", gID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("user not found after insert, skipping seed", "g_id", gID)
		return nil
	}
	if err != nil {
		return s.fail("user", err)
	}

	if _, err := s.q.ExecContext(ctx, `
		INSERT INTO profile (user_id, age, weight, height, skill_level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID, seedAge, seedWeight, seedHeight, SeedSkillLevel); err != nil {
		return s.fail("profile", err)
	}

	if _, err := s.q.ExecContext(ctx, `
		INSERT INTO workoutPlan (user_id, name) VALUES (?, ?)
		ON CONFLICT(user_id, name) DO NOTHING
	`, userID, SeedPlanName); err != nil {
		return s.fail("plan", err)
	}

	var planID int64
	err = s.q.QueryRowContext(ctx,
		"SELECT id FROM workoutPlan WHERE user_id = ? AND name = ?", userID, SeedPlanName).Scan(&planID)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("workout plan not found after insert", "user_id", userID)
		return nil
	}
	if err != nil {
		return s.fail("plan", err)
	}

	for _, ex := range seedExercises {
		if err := s.seedExercise(ctx, planID, ex); err != nil {
			return s.fail("exercise "+ex.name, err)
		}
	}

	s.logger.Info("local database seeded", "user_id", userID, "username", username)
	return nil
}

func (s *Seeder) seedExercise(ctx context.Context, planID int64, ex seedExercise) error {
	if _, err := s.q.ExecContext(ctx, `
		INSERT INTO exercise (name, description, muscle_group) VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, ex.name, ex.description, ex.muscleGroup); err != nil {
		return err
	}

	var exerciseID int64
	if err := s.q.QueryRowContext(ctx,
		"SELECT id FROM exercise WHERE name = ?", ex.name).Scan(&exerciseID); err != nil {
		return err
	}

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO workoutPlanExercises (workout_plan_id, exercise_id, day, sets, reps)
		SELECT ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM workoutPlanExercises
			WHERE workout_plan_id = ? AND exercise_id = ? AND day = ?
		)
	`, planID, exerciseID, SeedDay, SeedSets, SeedReps, planID, exerciseID, SeedDay)
	return err
}

func (s *Seeder) fail(step string, err error) error {
	s.logger.Error("seeding failed", "step", step, "error", err)
	return fmt.Errorf("seed %s: %w", step, classify(err))
}
