package services

import (
	"context"
	"log/slog"
	"net/url"

	"flexzone/models"
	"flexzone/session"
)

// PlanService drives the backend plans for the signed-in Google account.
// A day has at most one plan; the first one the backend returns is used.
type PlanService struct {
	store  SecureStore
	client PlanClient
	logger *slog.Logger
}

func NewPlanService(store SecureStore, client PlanClient, logger *slog.Logger) *PlanService {
	return &PlanService{store: store, client: client, logger: logger}
}

// DayPlan returns the plan for day, or nil when there is none.
func (ps *PlanService) DayPlan(ctx context.Context, day string) (*models.RemotePlan, error) {
	googleID, err := requireKey(ctx, ps.store, session.KeyGoogleID)
	if err != nil {
		return nil, err
	}
	return ps.dayPlan(ctx, googleID, day)
}

// AddExerciseToDay adds an exercise to the day's plan, creating the plan
// under planName when the day has none.
func (ps *PlanService) AddExerciseToDay(ctx context.Context, day, planName string, exercise models.PlanExerciseInput) (*models.RemotePlan, error) {
	googleID, err := requireKey(ctx, ps.store, session.KeyGoogleID)
	if err != nil {
		return nil, err
	}

	plan, err := ps.dayPlan(ctx, googleID, day)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan, err = ps.client.CreatePlan(ctx, models.PlanInput{GoogleID: googleID, Name: planName, Day: day})
		if err != nil {
			return nil, err
		}
		ps.logger.Info("plan created", "plan_id", plan.ID, "day", day)
	}

	if err := ps.client.AddExerciseToPlan(ctx, plan.ID, exercise); err != nil {
		return nil, err
	}
	return plan, nil
}

// RenameDayPlan renames the day's plan, or creates one with that name.
func (ps *PlanService) RenameDayPlan(ctx context.Context, day, name string) (*models.RemotePlan, error) {
	googleID, err := requireKey(ctx, ps.store, session.KeyGoogleID)
	if err != nil {
		return nil, err
	}

	plan, err := ps.dayPlan(ctx, googleID, day)
	if err != nil {
		return nil, err
	}

	input := models.PlanInput{GoogleID: googleID, Name: name, Day: day}
	if plan == nil {
		return ps.client.CreatePlan(ctx, input)
	}
	return ps.client.UpdatePlan(ctx, plan.ID, input)
}

func (ps *PlanService) UpdateDayExercise(ctx context.Context, day, name string, sets, reps int) error {
	plan, err := ps.requireDayPlan(ctx, day)
	if err != nil {
		return err
	}
	return ps.client.UpdateExerciseInPlan(ctx, plan.ID, name, sets, reps)
}

func (ps *PlanService) DeleteDayExercise(ctx context.Context, day, name string) error {
	plan, err := ps.requireDayPlan(ctx, day)
	if err != nil {
		return err
	}
	return ps.client.DeleteExerciseFromPlan(ctx, plan.ID, name)
}

// SearchCatalog looks exercises up by name. An empty name lists the whole
// catalog.
func (ps *PlanService) SearchCatalog(ctx context.Context, name string) ([]models.CatalogExercise, error) {
	params := url.Values{}
	if name != "" {
		params.Set("name", name)
	}
	return ps.client.GetWorkouts(ctx, params)
}

func (ps *PlanService) CatalogExercise(ctx context.Context, id int64) (*models.CatalogExercise, error) {
	return ps.client.GetWorkoutDetail(ctx, id)
}

func (ps *PlanService) requireDayPlan(ctx context.Context, day string) (*models.RemotePlan, error) {
	plan, err := ps.DayPlan(ctx, day)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (ps *PlanService) dayPlan(ctx context.Context, googleID, day string) (*models.RemotePlan, error) {
	plans, err := ps.client.GetPlansByDay(ctx, googleID, day)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return &plans[0], nil
}
