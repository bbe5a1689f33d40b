package handlers

import (
	"flexzone/app"

	"github.com/gofiber/fiber/v2"
)

// Health checks that the database answers
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Repo.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
		return success(c, fiber.Map{"status": "ok"})
	}
}
