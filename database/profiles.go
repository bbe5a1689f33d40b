package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"flexzone/models"
)

const DefaultSkillLevel = "Beginner"

type ProfileRepository struct {
	q      querier
	users  *UserRepository
	logger *slog.Logger
}

func NewProfileRepository(db *DB, users *UserRepository, logger *slog.Logger) *ProfileRepository {
	return &ProfileRepository{q: db, users: users, logger: logger}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	var profile models.Profile
	var age, weight, height sql.NullFloat64
	var skill sql.NullString

	err := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, age, weight, height, skill_level
		FROM profile WHERE user_id = ?
	`, userID).Scan(&profile.ID, &profile.UserID, &age, &weight, &height, &skill)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Age = nullFloatPtr(age)
	profile.Weight = nullFloatPtr(weight)
	profile.Height = nullFloatPtr(height)
	profile.SkillLevel = skill.String
	return &profile, nil
}

// GetUserAndProfileByEmail returns nil when no user has the email, and a
// nil Profile when the user has not been onboarded yet.
func (r *ProfileRepository) GetUserAndProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	profile, err := r.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{User: *user, Profile: profile}, nil
}

// Create returns the user's existing profile unchanged, or inserts a new
// one from the sanitized input.
func (r *ProfileRepository) Create(ctx context.Context, newProfile models.NewProfile) (*models.Profile, error) {
	existing, err := r.GetByUserID(ctx, newProfile.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	skill := DefaultSkillLevel
	if newProfile.SkillLevel != nil {
		skill = *newProfile.SkillLevel
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO profile (user_id, age, weight, height, skill_level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`,
		newProfile.UserID,
		nullableNumber(newProfile.Age),
		nullableNumber(newProfile.Weight),
		nullableNumber(newProfile.Height),
		skill,
	)
	if err != nil {
		r.logger.Error("create profile failed", "user_id", newProfile.UserID, "error", err)
		return nil, fmt.Errorf("failed to create profile: %w", classify(err))
	}

	inserted, err := r.GetByUserID(ctx, newProfile.UserID)
	if err != nil {
		return nil, err
	}
	if inserted == nil {
		r.logger.Error("created profile missing on re-read", "user_id", newProfile.UserID)
		return nil, fmt.Errorf("%w: profile for user %d not found after insert", ErrInternal, newProfile.UserID)
	}
	return inserted, nil
}
