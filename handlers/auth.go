package handlers

import (
	"errors"

	"flexzone/app"
	"flexzone/models"
	"flexzone/services"

	"github.com/gofiber/fiber/v2"
)

// SignIn exchanges a Google ID token for a local session. The returned token
// authorizes every other /api route.
func SignIn(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SignInRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalidInput(c, err)
		}

		sess, err := a.AuthService.SignIn(c.UserContext(), req.IDToken)
		if err != nil {
			a.Logger.Warn("sign-in failed", "error", err)
			return handleError(c, err, "Sign-in failed")
		}

		return success(c, fiber.Map{
			"success": true,
			"token":   sess.Token,
			"user":    sess.User,
		})
	}
}

// Logout clears the session
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.AuthService.SignOut(c.UserContext()); err != nil {
			return serverErrorWithDetails(c, "Failed to sign out", err)
		}

		return success(c, fiber.Map{
			"success": true,
		})
	}
}

// Me reports whether a user is signed in
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := a.AuthService.CurrentEmail(c.UserContext())
		if errors.Is(err, services.ErrNotSignedIn) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"authenticated": false,
			})
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read session", err)
		}

		return success(c, fiber.Map{
			"authenticated": true,
			"email":         email,
		})
	}
}
