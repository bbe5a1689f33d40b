package handlers

import (
	"flexzone/app"
	"flexzone/models"

	"github.com/gofiber/fiber/v2"
)

type dayExerciseRequest struct {
	PlanName string `json:"plan_name" validate:"required,max=100,label"`
	models.PlanExerciseInput
}

type dayExerciseUpdate struct {
	Sets int `json:"sets" validate:"gte=0"`
	Reps int `json:"reps" validate:"gte=0"`
}

// SearchCatalog searches the backend exercise catalog by name
func SearchCatalog(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exercises, err := a.PlanService.SearchCatalog(c.UserContext(), c.Query("name"))
		if err != nil {
			return handleError(c, err, "Failed to search exercises")
		}
		return success(c, fiber.Map{"exercises": exercises})
	}
}

// GetCatalogExercise returns one catalog entry
func GetCatalogExercise(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return badRequest(c, "Invalid exercise id")
		}

		exercise, err := a.PlanService.CatalogExercise(c.UserContext(), int64(id))
		if err != nil {
			return handleError(c, err, "Failed to get exercise")
		}
		return success(c, fiber.Map{"exercise": exercise})
	}
}

// GetDayPlan returns the backend plan for a day
func GetDayPlan(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := c.Params("day")
		if !isWeekday(day) {
			return badRequest(c, "Invalid day")
		}

		plan, err := a.PlanService.DayPlan(c.UserContext(), day)
		if err != nil {
			return handleError(c, err, "Failed to get plan")
		}
		return success(c, fiber.Map{"plan": plan})
	}
}

// RenameDayPlan renames the day's plan, creating it if needed
func RenameDayPlan(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := c.Params("day")
		if !isWeekday(day) {
			return badRequest(c, "Invalid day")
		}

		var req models.RenamePlanRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalidInput(c, err)
		}

		plan, err := a.PlanService.RenameDayPlan(c.UserContext(), day, req.Name)
		if err != nil {
			return handleError(c, err, "Failed to rename plan")
		}
		return success(c, fiber.Map{"plan": plan})
	}
}

// AddDayPlanExercise adds a catalog exercise to the day's backend plan
func AddDayPlanExercise(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := c.Params("day")
		if !isWeekday(day) {
			return badRequest(c, "Invalid day")
		}

		var req dayExerciseRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalidInput(c, err)
		}

		plan, err := a.PlanService.AddExerciseToDay(c.UserContext(), day, req.PlanName, req.PlanExerciseInput)
		if err != nil {
			return handleError(c, err, "Failed to add exercise to plan")
		}
		return created(c, fiber.Map{"plan": plan})
	}
}

// UpdateDayPlanExercise changes sets and reps in the day's backend plan
func UpdateDayPlanExercise(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dayExerciseUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalidInput(c, err)
		}

		err := a.PlanService.UpdateDayExercise(c.UserContext(), c.Params("day"), nameParam(c), req.Sets, req.Reps)
		if err != nil {
			return handleError(c, err, "Failed to update exercise")
		}
		return success(c, fiber.Map{"success": true})
	}
}

// DeleteDayPlanExercise removes an exercise from the day's backend plan
func DeleteDayPlanExercise(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.PlanService.DeleteDayExercise(c.UserContext(), c.Params("day"), nameParam(c)); err != nil {
			return handleError(c, err, "Failed to delete exercise")
		}
		return success(c, fiber.Map{"success": true})
	}
}
