package services

import (
	"context"
	"net/url"

	"flexzone/database"
	"flexzone/models"
)

// UserRepository defines the user lookups the services need
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, gID string) (*models.User, error)
}

// UserRegistrar creates a user together with its starter data
type UserRegistrar interface {
	RegisterUser(ctx context.Context, newUser models.NewUser) (*models.User, error)
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	GetUserAndProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	Create(ctx context.Context, newProfile models.NewProfile) (*models.Profile, error)
}

// WorkoutPlanRepository defines the interface for local plan data access
type WorkoutPlanRepository interface {
	AddExerciseToWorkoutPlan(ctx context.Context, userID int64, planName, exerciseName, day string, sets, reps any) error
	FetchPlanExercises(ctx context.Context, scope database.Scope, day string) ([]models.WorkoutExercise, error)
	UpdatePlanExercise(ctx context.Context, scope database.Scope, name string, sets, reps any) error
	DeletePlanExercise(ctx context.Context, scope database.Scope, name string) error
	GetPlansByUser(ctx context.Context, userID int64) ([]models.WorkoutPlan, error)
}

// SecureStore is the encrypted key-value store holding session state
type SecureStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenVerifier checks a Google ID token and returns the identity in it
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*models.GoogleUser, error)
}

// TokenExchanger trades a Google ID token for a backend JWT
type TokenExchanger interface {
	ExchangeGoogleToken(ctx context.Context, idToken string) (string, error)
}

// PlanClient represents the backend plan and catalog endpoints.
// Production uses api.Client.
type PlanClient interface {
	GetPlansByDay(ctx context.Context, googleID, day string) ([]models.RemotePlan, error)
	CreatePlan(ctx context.Context, plan models.PlanInput) (*models.RemotePlan, error)
	UpdatePlan(ctx context.Context, id int64, plan models.PlanInput) (*models.RemotePlan, error)
	AddExerciseToPlan(ctx context.Context, planID int64, exercise models.PlanExerciseInput) error
	UpdateExerciseInPlan(ctx context.Context, planID int64, name string, sets, reps int) error
	DeleteExerciseFromPlan(ctx context.Context, planID int64, name string) error
	GetWorkouts(ctx context.Context, params url.Values) ([]models.CatalogExercise, error)
	GetWorkoutDetail(ctx context.Context, id int64) (*models.CatalogExercise, error)
}
