package handlers

import (
	"flexzone/app"
	"flexzone/models"
	"flexzone/validator"

	"github.com/gofiber/fiber/v2"
)

// GetPlans lists the signed-in user's local plans
func GetPlans(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		plans, err := a.WorkoutService.Plans(c.UserContext())
		if err != nil {
			return handleError(c, err, "Failed to get plans")
		}
		return success(c, fiber.Map{"plans": plans})
	}
}

// GetWorkoutDay lists the exercises scheduled on a day
func GetWorkoutDay(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := c.Params("day")
		if !isWeekday(day) {
			return badRequest(c, "Invalid day")
		}

		exercises, err := a.WorkoutService.Day(c.UserContext(), day)
		if err != nil {
			return handleError(c, err, "Failed to get workout")
		}

		return success(c, fiber.Map{
			"day":       day,
			"exercises": exercises,
		})
	}
}

// AddWorkoutExercise adds an exercise to a local plan
func AddWorkoutExercise(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AddExerciseRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalidInput(c, err)
		}

		if err := a.WorkoutService.AddExercise(c.UserContext(), req); err != nil {
			return handleError(c, err, "Failed to add exercise")
		}

		return created(c, fiber.Map{"success": true})
	}
}

// UpdateWorkoutExercise changes sets and reps of an exercise in the user's plans
func UpdateWorkoutExercise(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateExerciseRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.WorkoutService.UpdateExercise(c.UserContext(), nameParam(c), req.Sets, req.Reps); err != nil {
			return handleError(c, err, "Failed to update exercise")
		}

		return success(c, fiber.Map{"success": true})
	}
}

// DeleteWorkoutExercise removes an exercise from the user's plans
func DeleteWorkoutExercise(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.WorkoutService.DeleteExercise(c.UserContext(), nameParam(c)); err != nil {
			return handleError(c, err, "Failed to delete exercise")
		}

		return success(c, fiber.Map{"success": true})
	}
}

func isWeekday(day string) bool {
	for _, d := range validator.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
