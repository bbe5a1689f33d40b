package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flexzone/models"
	"flexzone/validator"

	"github.com/patrickmn/go-cache"
)

const userCacheTTL = 5 * time.Minute

// UserRepository reads and creates rows of the user table.
// Users are immutable once created, so found rows are cached.
type UserRepository struct {
	q        querier
	cache    *cache.Cache
	validate *validator.Validator
	logger   *slog.Logger
}

func NewUserRepository(db *DB, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		q:        db,
		cache:    cache.New(userCacheTTL, 10*time.Minute),
		validate: validator.New(),
		logger:   logger,
	}
}

// WithTx returns a repository bound to tx. It does not populate the cache,
// since the transaction may still roll back.
func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{
		q:        tx,
		validate: r.validate,
		logger:   r.logger,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, gID string) (*models.User, error) {
	return r.getBy(ctx, "g_id", gID)
}

// Create trims and validates the input, inserts the row and returns it as
// stored.
func (r *UserRepository) Create(ctx context.Context, newUser models.NewUser) (*models.User, error) {
	newUser.Username = strings.TrimSpace(newUser.Username)
	newUser.Email = strings.TrimSpace(newUser.Email)

	if err := r.validate.Validate(&newUser); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO user (g_id, username, email, profile_pic)
		VALUES (?, ?, ?, ?)
	`, newUser.GoogleID, newUser.Username, newUser.Email, newUser.ProfilePic)
	if err != nil {
		r.logger.Error("create user failed", "email", newUser.Email, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", classify(err))
	}

	user, err := r.query(ctx, "email", newUser.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		r.logger.Error("created user missing on re-read", "email", newUser.Email)
		return nil, fmt.Errorf("%w: user %q not found after insert", ErrInternal, newUser.Email)
	}

	r.logger.Debug("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_%s_%s", column, value)
	if r.cache != nil {
		if cached, found := r.cache.Get(cacheKey); found {
			user := *cached.(*models.User)
			return &user, nil
		}
	}

	user, err := r.query(ctx, column, value)
	if err != nil || user == nil {
		return user, err
	}

	if r.cache != nil {
		stored := *user
		r.cache.Set(cacheKey, &stored, cache.DefaultExpiration)
	}
	return user, nil
}

func (r *UserRepository) query(ctx context.Context, column, value string) (*models.User, error) {
	// column is one of a fixed set chosen by this file, never user input
	row := r.q.QueryRowContext(ctx, `
		SELECT id, g_id, username, email, profile_pic
		FROM user WHERE `+column+` = ?
	`, value)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var gID, username, email, profilePic sql.NullString

	if err := row.Scan(&user.ID, &gID, &username, &email, &profilePic); err != nil {
		return nil, err
	}

	user.GoogleID = nullStringPtr(gID)
	user.Username = username.String
	user.Email = email.String
	user.ProfilePic = nullStringPtr(profilePic)
	return &user, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullFloatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
