package setup

import (
	"time"

	"flexzone/app"
	"flexzone/handlers"
	"flexzone/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	// Public routes
	fiberApp.Get("/health", handlers.Health(application))

	fiberApp.Post("/api/auth/google", handlers.SignIn(application))

	// Signed-in routes, authorized by the session token from sign-in
	api := fiberApp.Group("/api", middleware.SessionRequired(application.SecureStore), limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if email := middleware.GetUserEmail(c); email != "" {
				return "user:" + email
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded for your account",
			})
		},
	}))

	api.Post("/auth/logout", handlers.Logout(application))
	api.Get("/auth/me", handlers.Me(application))

	api.Get("/profile", handlers.GetProfile(application))
	api.Post("/profile", handlers.Onboard(application))

	api.Get("/workouts", handlers.GetPlans(application))
	api.Post("/workouts", handlers.AddWorkoutExercise(application))
	api.Get("/workouts/:day", handlers.GetWorkoutDay(application))
	api.Put("/workouts/exercises/:name", handlers.UpdateWorkoutExercise(application))
	api.Delete("/workouts/exercises/:name", handlers.DeleteWorkoutExercise(application))

	api.Get("/catalog", handlers.SearchCatalog(application))
	api.Get("/catalog/:id", handlers.GetCatalogExercise(application))

	api.Get("/plans/:day", handlers.GetDayPlan(application))
	api.Put("/plans/:day", handlers.RenameDayPlan(application))
	api.Post("/plans/:day/exercises", handlers.AddDayPlanExercise(application))
	api.Put("/plans/:day/exercises/:name", handlers.UpdateDayPlanExercise(application))
	api.Delete("/plans/:day/exercises/:name", handlers.DeleteDayPlanExercise(application))
}
