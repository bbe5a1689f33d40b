package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"flexzone/models"

	sq "github.com/Masterminds/squirrel"
)

// Scope narrows plan-exercise operations to one owner and/or one plan.
// The zero Scope matches every plan of every user.
type Scope struct {
	UserID   int64
	PlanName string
}

func (s Scope) isZero() bool {
	return s.UserID == 0 && s.PlanName == ""
}

// planIDs returns the subquery selecting the ids of plans in scope.
func (s Scope) planIDs() sq.SelectBuilder {
	sub := sq.Select("id").From("workoutPlan")
	if s.UserID != 0 {
		sub = sub.Where(sq.Eq{"user_id": s.UserID})
	}
	if s.PlanName != "" {
		sub = sub.Where(sq.Eq{"name": s.PlanName})
	}
	return sub
}

type WorkoutPlanRepository struct {
	q      querier
	logger *slog.Logger
}

func NewWorkoutPlanRepository(db *DB, logger *slog.Logger) *WorkoutPlanRepository {
	return &WorkoutPlanRepository{q: db, logger: logger}
}

// AddExerciseToWorkoutPlan finds or creates the exercise, finds or creates
// the user's plan, then links them for the given day. Repeated calls add
// repeated links. A failure is returned as an *OpError naming the step.
func (r *WorkoutPlanRepository) AddExerciseToWorkoutPlan(ctx context.Context, userID int64, planName, exerciseName, day string, sets, reps any) error {
	const op = "add exercise to workout plan"

	if strings.TrimSpace(exerciseName) == "" {
		return r.fail(&OpError{Op: op, Step: "exercise", Kind: ErrValidation, Err: errors.New("exercise name is empty")})
	}
	if strings.TrimSpace(planName) == "" {
		return r.fail(&OpError{Op: op, Step: "plan", Kind: ErrValidation, Err: errors.New("plan name is empty")})
	}

	exerciseID, err := r.findOrCreateExercise(ctx, exerciseName)
	if err != nil {
		return r.fail(opError(op, "exercise", err))
	}

	planID, err := r.findOrCreatePlan(ctx, userID, planName)
	if err != nil {
		return r.fail(opError(op, "plan", err))
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO workoutPlanExercises (workout_plan_id, exercise_id, day, sets, reps)
		VALUES (?, ?, ?, ?, ?)
	`, planID, exerciseID, day, nullableNumber(sets), nullableNumber(reps))
	if err != nil {
		return r.fail(opError(op, "link", err))
	}

	r.logger.Debug("exercise added to workout plan",
		"user_id", userID, "plan", planName, "exercise", exerciseName, "day", day)
	return nil
}

// FetchWorkoutExercises lists the exercises scheduled on day across every
// plan of every user.
func (r *WorkoutPlanRepository) FetchWorkoutExercises(ctx context.Context, day string) ([]models.WorkoutExercise, error) {
	return r.FetchPlanExercises(ctx, Scope{}, day)
}

// UpdateWorkoutExerciseByName sets sets/reps on every link to the named
// exercise, whichever plan it belongs to.
func (r *WorkoutPlanRepository) UpdateWorkoutExerciseByName(ctx context.Context, name string, sets, reps any) error {
	_, err := r.updateExercise(ctx, Scope{}, name, sets, reps)
	return err
}

// DeleteExerciseFromWorkoutPlanByName removes every link to the named
// exercise, whichever plan it belongs to.
func (r *WorkoutPlanRepository) DeleteExerciseFromWorkoutPlanByName(ctx context.Context, name string) error {
	_, err := r.deleteExercise(ctx, Scope{}, name)
	return err
}

func (r *WorkoutPlanRepository) FetchPlanExercises(ctx context.Context, scope Scope, day string) ([]models.WorkoutExercise, error) {
	query := sq.Select("e.name", "we.sets", "we.reps").
		From("workoutPlanExercises we").
		Join("exercise e ON we.exercise_id = e.id").
		Where(sq.Eq{"we.day": day}).
		OrderBy("we.id")

	if !scope.isZero() {
		query = query.Join("workoutPlan wp ON we.workout_plan_id = wp.id")
		if scope.UserID != 0 {
			query = query.Where(sq.Eq{"wp.user_id": scope.UserID})
		}
		if scope.PlanName != "" {
			query = query.Where(sq.Eq{"wp.name": scope.PlanName})
		}
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build workout query: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, stmt, args...)
	if err != nil {
		r.logger.Error("fetch workout exercises failed", "day", day, "error", err)
		return nil, fmt.Errorf("failed to fetch workout exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]models.WorkoutExercise, 0)
	for rows.Next() {
		var ex models.WorkoutExercise
		var sets, reps float64
		if err := rows.Scan(&ex.Name, &sets, &reps); err != nil {
			return nil, fmt.Errorf("failed to scan workout exercise: %w", err)
		}
		ex.Sets = int(math.Round(sets))
		ex.Reps = int(math.Round(reps))
		exercises = append(exercises, ex)
	}

	return exercises, rows.Err()
}

// UpdatePlanExercise is UpdateWorkoutExerciseByName restricted to scope.
// It returns ErrNotFound when nothing in scope links to the exercise.
func (r *WorkoutPlanRepository) UpdatePlanExercise(ctx context.Context, scope Scope, name string, sets, reps any) error {
	affected, err := r.updateExercise(ctx, scope, name, sets, reps)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: exercise %q in plan", ErrNotFound, name)
	}
	return nil
}

// DeletePlanExercise is DeleteExerciseFromWorkoutPlanByName restricted to
// scope. It returns ErrNotFound when nothing in scope links to the exercise.
func (r *WorkoutPlanRepository) DeletePlanExercise(ctx context.Context, scope Scope, name string) error {
	affected, err := r.deleteExercise(ctx, scope, name)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: exercise %q in plan", ErrNotFound, name)
	}
	return nil
}

func (r *WorkoutPlanRepository) GetPlansByUser(ctx context.Context, userID int64) ([]models.WorkoutPlan, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, user_id, name
		FROM workoutPlan
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}
	defer rows.Close()

	plans := make([]models.WorkoutPlan, 0)
	for rows.Next() {
		var plan models.WorkoutPlan
		if err := rows.Scan(&plan.ID, &plan.UserID, &plan.Name); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (r *WorkoutPlanRepository) GetPlanByName(ctx context.Context, userID int64, name string) (*models.WorkoutPlan, error) {
	var plan models.WorkoutPlan
	err := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, name
		FROM workoutPlan
		WHERE user_id = ? AND name = ?
	`, userID, name).Scan(&plan.ID, &plan.UserID, &plan.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

func (r *WorkoutPlanRepository) updateExercise(ctx context.Context, scope Scope, name string, sets, reps any) (int64, error) {
	query := sq.Update("workoutPlanExercises").
		Set("sets", nullableNumber(sets)).
		Set("reps", nullableNumber(reps)).
		Where("exercise_id = (SELECT id FROM exercise WHERE name = ?)", name)
	if !scope.isZero() {
		query = query.Where(sq.Expr("workout_plan_id IN (?)", scope.planIDs()))
	}

	affected, err := r.exec(ctx, query)
	if err != nil {
		r.logger.Error("update workout exercise failed", "name", name, "error", err)
		return 0, fmt.Errorf("failed to update workout exercise: %w", classify(err))
	}

	r.logger.Debug("workout exercise updated", "name", name, "rows", affected)
	return affected, nil
}

func (r *WorkoutPlanRepository) deleteExercise(ctx context.Context, scope Scope, name string) (int64, error) {
	query := sq.Delete("workoutPlanExercises").
		Where("exercise_id = (SELECT id FROM exercise WHERE name = ?)", name)
	if !scope.isZero() {
		query = query.Where(sq.Expr("workout_plan_id IN (?)", scope.planIDs()))
	}

	affected, err := r.exec(ctx, query)
	if err != nil {
		r.logger.Error("delete workout exercise failed", "name", name, "error", err)
		return 0, fmt.Errorf("failed to delete workout exercise: %w", classify(err))
	}

	r.logger.Debug("workout exercise deleted", "name", name, "rows", affected)
	return affected, nil
}

func (r *WorkoutPlanRepository) exec(ctx context.Context, query sq.Sqlizer) (int64, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *WorkoutPlanRepository) findOrCreateExercise(ctx context.Context, name string) (int64, error) {
	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO exercise (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name); err != nil {
		return 0, classify(err)
	}

	var id int64
	err := r.q.QueryRowContext(ctx, "SELECT id FROM exercise WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: exercise %q", ErrNotFound, name)
	}
	return id, err
}

func (r *WorkoutPlanRepository) findOrCreatePlan(ctx context.Context, userID int64, name string) (int64, error) {
	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO workoutPlan (user_id, name) VALUES (?, ?)
		ON CONFLICT(user_id, name) DO NOTHING
	`, userID, name); err != nil {
		return 0, classify(err)
	}

	var id int64
	err := r.q.QueryRowContext(ctx,
		"SELECT id FROM workoutPlan WHERE user_id = ? AND name = ?", userID, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: plan %q", ErrNotFound, name)
	}
	return id, err
}

func (r *WorkoutPlanRepository) fail(err *OpError) error {
	r.logger.Error("workout plan operation failed",
		"op", err.Op, "step", err.Step, "kind", err.Kind, "error", err.Err)
	return err
}
