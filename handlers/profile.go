package handlers

import (
	"flexzone/app"
	"flexzone/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the signed-in user and their profile
func GetProfile(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := a.ProfileService.Current(c.UserContext())
		if err != nil {
			return handleError(c, err, "Failed to get profile")
		}

		return success(c, fiber.Map{
			"user":    result.User,
			"profile": result.Profile,
		})
	}
}

// Onboard creates the profile from the onboarding form
func Onboard(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form models.OnboardingForm
		if err := c.BodyParser(&form); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&form); err != nil {
			return invalidInput(c, err)
		}

		profile, err := a.ProfileService.Onboard(c.UserContext(), form)
		if err != nil {
			return handleError(c, err, "Failed to save profile")
		}

		return created(c, fiber.Map{
			"profile": profile,
		})
	}
}
