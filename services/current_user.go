package services

import (
	"context"

	"flexzone/models"
	"flexzone/session"
)

// currentUser resolves the signed-in user from the secure store.
type currentUser struct {
	store SecureStore
	users UserRepository
}

func (c currentUser) email(ctx context.Context) (string, error) {
	return requireKey(ctx, c.store, session.KeySession)
}

func (c currentUser) user(ctx context.Context) (*models.User, error) {
	email, err := c.email(ctx)
	if err != nil {
		return nil, err
	}

	user, err := c.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func requireKey(ctx context.Context, store SecureStore, key string) (string, error) {
	value, ok, err := store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return "", ErrNotSignedIn
	}
	return value, nil
}
