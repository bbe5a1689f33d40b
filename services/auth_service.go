package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"flexzone/models"
	"flexzone/session"

	"github.com/google/uuid"
)

// AuthService handles authentication business logic
type AuthService struct {
	users     UserRepository
	registrar UserRegistrar
	store     SecureStore
	verifier  TokenVerifier
	exchanger TokenExchanger
	logger    *slog.Logger

	signingIn atomic.Bool
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, registrar UserRegistrar, store SecureStore, verifier TokenVerifier, exchanger TokenExchanger, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		registrar: registrar,
		store:     store,
		verifier:  verifier,
		exchanger: exchanger,
		logger:    logger,
	}
}

// SignIn verifies a Google ID token, obtains a backend JWT and makes sure a
// local user exists. A user seen for the first time gets starter data.
// Only one sign-in may run at a time. Each sign-in issues a fresh session
// token and invalidates the previous one.
func (as *AuthService) SignIn(ctx context.Context, idToken string) (*models.Session, error) {
	if !as.signingIn.CompareAndSwap(false, true) {
		as.logger.Warn("sign-in already in progress, ignoring duplicate call")
		return nil, ErrSignInInProgress
	}
	defer as.signingIn.Store(false)

	gUser, err := as.verifier.Verify(ctx, idToken)
	if err != nil {
		as.logger.Warn("google token rejected", "error", err)
		return nil, err
	}
	if gUser.ID == "" || gUser.Email == "" {
		as.logger.Warn("google user missing id or email")
		return nil, ErrInvalidUserInfo
	}

	jwt, err := as.exchanger.ExchangeGoogleToken(ctx, idToken)
	if err != nil {
		as.logger.Error("backend token exchange failed", "error", err)
		return nil, fmt.Errorf("backend verification failed: %w", err)
	}
	if err := as.store.Set(ctx, session.KeyJWT, jwt); err != nil {
		return nil, err
	}
	if err := as.store.Set(ctx, session.KeyGoogleID, gUser.ID); err != nil {
		return nil, err
	}

	user, err := as.users.GetByGoogleID(ctx, gUser.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = as.registrar.RegisterUser(ctx, newUserFromGoogle(gUser))
		if err != nil {
			as.logger.Error("failed to create local user", "email", gUser.Email, "error", err)
			return nil, err
		}
		as.logger.Info("new user registered", "user_id", user.ID, "email", user.Email)
	}

	// the local row is authoritative; the Google email may have changed
	if err := as.store.Set(ctx, session.KeySession, user.Email); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := as.store.Set(ctx, session.KeySessionToken, token); err != nil {
		return nil, err
	}
	return &models.Session{Token: token, User: user}, nil
}

// SignOut drops the backend token and the session. The session is cleared
// even when removing the tokens fails.
func (as *AuthService) SignOut(ctx context.Context) error {
	tokenErr := as.store.Delete(ctx, session.KeySessionToken)
	jwtErr := as.store.Delete(ctx, session.KeyJWT)
	gIDErr := as.store.Delete(ctx, session.KeyGoogleID)
	if err := as.store.Delete(ctx, session.KeySession); err != nil {
		return err
	}
	return errors.Join(tokenErr, jwtErr, gIDErr)
}

// CurrentEmail returns the signed-in email or ErrNotSignedIn
func (as *AuthService) CurrentEmail(ctx context.Context) (string, error) {
	return requireKey(ctx, as.store, session.KeySession)
}

func newUserFromGoogle(g *models.GoogleUser) models.NewUser {
	gID := g.ID
	newUser := models.NewUser{
		GoogleID: &gID,
		Username: g.Name,
		Email:    g.Email,
	}
	if newUser.Username == "" {
		newUser.Username = g.Email
	}
	if g.Photo != "" {
		photo := g.Photo
		newUser.ProfilePic = &photo
	}
	return newUser
}
