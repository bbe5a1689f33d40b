package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"flexzone/models"
)

func (c *Client) GetPlans(ctx context.Context, googleID string) ([]models.RemotePlan, error) {
	var plans []models.RemotePlan
	target := c.endpoint(url.Values{"googleId": {googleID}}, "plans")
	if err := c.do(ctx, c.authed, http.MethodGet, target, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) GetPlansByDay(ctx context.Context, googleID, day string) ([]models.RemotePlan, error) {
	var plans []models.RemotePlan
	target := c.endpoint(url.Values{"googleId": {googleID}, "day": {day}}, "plans", "day")
	if err := c.do(ctx, c.authed, http.MethodGet, target, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) CreatePlan(ctx context.Context, plan models.PlanInput) (*models.RemotePlan, error) {
	var created models.RemotePlan
	if err := c.do(ctx, c.authed, http.MethodPost, c.endpoint(nil, "plans"), plan, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePlan(ctx context.Context, id int64, plan models.PlanInput) (*models.RemotePlan, error) {
	var updated models.RemotePlan
	target := c.endpoint(nil, "plans", strconv.FormatInt(id, 10))
	if err := c.do(ctx, c.authed, http.MethodPut, target, plan, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePlan(ctx context.Context, id int64) error {
	target := c.endpoint(nil, "plans", strconv.FormatInt(id, 10))
	return c.do(ctx, c.authed, http.MethodDelete, target, nil, nil)
}

func (c *Client) AddExerciseToPlan(ctx context.Context, planID int64, exercise models.PlanExerciseInput) error {
	target := c.endpoint(nil, "plans", strconv.FormatInt(planID, 10), "addExercise")
	return c.do(ctx, c.authed, http.MethodPost, target, exercise, nil)
}

func (c *Client) UpdateExerciseInPlan(ctx context.Context, planID int64, name string, sets, reps int) error {
	target := c.endpoint(nil, "plans", strconv.FormatInt(planID, 10), "exercise", name)
	body := map[string]int{"sets": sets, "reps": reps}
	return c.do(ctx, c.authed, http.MethodPut, target, body, nil)
}

func (c *Client) DeleteExerciseFromPlan(ctx context.Context, planID int64, name string) error {
	target := c.endpoint(nil, "plans", strconv.FormatInt(planID, 10), "exercise", name)
	return c.do(ctx, c.authed, http.MethodDelete, target, nil, nil)
}
