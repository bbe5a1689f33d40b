package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"flexzone/models"
)

// GetWorkouts lists the exercise catalog. params is passed through as the
// query string.
func (c *Client) GetWorkouts(ctx context.Context, params url.Values) ([]models.CatalogExercise, error) {
	var workouts []models.CatalogExercise
	if err := c.do(ctx, c.authed, http.MethodGet, c.endpoint(params, "getWorkouts"), nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *Client) GetWorkoutDetail(ctx context.Context, id int64) (*models.CatalogExercise, error) {
	idStr := strconv.FormatInt(id, 10)
	target := c.endpoint(url.Values{"id": {idStr}}, "getWorkouts", idStr)

	var workout models.CatalogExercise
	if err := c.do(ctx, c.authed, http.MethodGet, target, nil, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}
