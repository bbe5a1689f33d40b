package database

import (
	"context"
	"database/sql"
	"log/slog"

	"flexzone/models"
)

// Repository groups the per-table repositories over one shared handle.
type Repository struct {
	db *DB

	Users        *UserRepository
	Profiles     *ProfileRepository
	WorkoutPlans *WorkoutPlanRepository
	Seeder       *Seeder
}

func NewRepository(db *DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}

	users := NewUserRepository(db, logger)
	return &Repository{
		db:           db,
		Users:        users,
		Profiles:     NewProfileRepository(db, users, logger),
		WorkoutPlans: NewWorkoutPlanRepository(db, logger),
		Seeder:       NewSeeder(db, logger),
	}
}

// InTx runs fn with repositories bound to a single transaction.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(r.withTx(tx))
	})
}

func (r *Repository) withTx(tx *sql.Tx) *Repository {
	users := r.Users.WithTx(tx)
	return &Repository{
		db:           r.db,
		Users:        users,
		Profiles:     &ProfileRepository{q: tx, users: users, logger: r.Profiles.logger},
		WorkoutPlans: &WorkoutPlanRepository{q: tx, logger: r.WorkoutPlans.logger},
		Seeder:       &Seeder{q: tx, logger: r.Seeder.logger},
	}
}

// RegisterUser creates a user and seeds its starter data in one
// transaction.
func (r *Repository) RegisterUser(ctx context.Context, newUser models.NewUser) (*models.User, error) {
	var created *models.User
	err := r.InTx(ctx, func(tx *Repository) error {
		user, err := tx.Users.Create(ctx, newUser)
		if err != nil {
			return err
		}
		if user.GoogleID != nil {
			if err := tx.Seeder.SeedUser(ctx, *user.GoogleID, user.Email, user.Username, user.ProfilePic); err != nil {
				return err
			}
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
