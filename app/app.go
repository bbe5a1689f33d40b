package app

import (
	"log/slog"

	"flexzone/api"
	"flexzone/database"
	"flexzone/services"
	"flexzone/session"
	"flexzone/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo        *database.Repository
	SecureStore *session.Store
	API         *api.Client
	Validator   *validator.Validator
	Logger      *slog.Logger

	AuthService    *services.AuthService
	ProfileService *services.ProfileService
	WorkoutService *services.WorkoutService
	PlanService    *services.PlanService
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, store *session.Store, client *api.Client, verifier services.TokenVerifier, logger *slog.Logger) *App {
	return &App{
		Repo:        repo,
		SecureStore: store,
		API:         client,
		Validator:   validator.New(),
		Logger:      logger,

		AuthService:    services.NewAuthService(repo.Users, repo, store, verifier, client, logger),
		ProfileService: services.NewProfileService(store, repo.Users, repo.Profiles),
		WorkoutService: services.NewWorkoutService(store, repo.Users, repo.WorkoutPlans),
		PlanService:    services.NewPlanService(store, client, logger),
	}
}
