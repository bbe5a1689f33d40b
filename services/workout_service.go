package services

import (
	"context"

	"flexzone/database"
	"flexzone/models"
)

// WorkoutService exposes the signed-in user's local plans. Every operation
// is scoped to that user.
type WorkoutService struct {
	current currentUser
	plans   WorkoutPlanRepository
}

func NewWorkoutService(store SecureStore, users UserRepository, plans WorkoutPlanRepository) *WorkoutService {
	return &WorkoutService{
		current: currentUser{store: store, users: users},
		plans:   plans,
	}
}

func (ws *WorkoutService) Day(ctx context.Context, day string) ([]models.WorkoutExercise, error) {
	user, err := ws.current.user(ctx)
	if err != nil {
		return nil, err
	}
	return ws.plans.FetchPlanExercises(ctx, database.Scope{UserID: user.ID}, day)
}

func (ws *WorkoutService) Plans(ctx context.Context) ([]models.WorkoutPlan, error) {
	user, err := ws.current.user(ctx)
	if err != nil {
		return nil, err
	}
	return ws.plans.GetPlansByUser(ctx, user.ID)
}

func (ws *WorkoutService) AddExercise(ctx context.Context, req models.AddExerciseRequest) error {
	user, err := ws.current.user(ctx)
	if err != nil {
		return err
	}
	return ws.plans.AddExerciseToWorkoutPlan(ctx, user.ID, req.PlanName, req.ExerciseName, req.Day, req.Sets, req.Reps)
}

func (ws *WorkoutService) UpdateExercise(ctx context.Context, name string, sets, reps any) error {
	user, err := ws.current.user(ctx)
	if err != nil {
		return err
	}
	return ws.plans.UpdatePlanExercise(ctx, database.Scope{UserID: user.ID}, name, sets, reps)
}

func (ws *WorkoutService) DeleteExercise(ctx context.Context, name string) error {
	user, err := ws.current.user(ctx)
	if err != nil {
		return err
	}
	return ws.plans.DeletePlanExercise(ctx, database.Scope{UserID: user.ID}, name)
}
