package services

import (
	"context"
	"fmt"

	"flexzone/models"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates ID tokens against Google's signing keys
type GoogleVerifier struct {
	ClientID string
}

func (v GoogleVerifier) Verify(ctx context.Context, idToken string) (*models.GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, idToken, v.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claim := func(name string) string {
		s, _ := payload.Claims[name].(string)
		return s
	}

	return &models.GoogleUser{
		ID:         payload.Subject,
		Email:      claim("email"),
		Name:       claim("name"),
		GivenName:  claim("given_name"),
		FamilyName: claim("family_name"),
		Photo:      claim("picture"),
	}, nil
}
