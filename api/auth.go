package api

import (
	"context"
	"errors"
	"net/http"
)

var ErrEmptyAccessToken = errors.New("backend returned no access token")

type exchangeRequest struct {
	Token string `json:"token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeGoogleToken trades a Google ID token for a backend JWT.
// It is the only call made without a bearer token.
func (c *Client) ExchangeGoogleToken(ctx context.Context, idToken string) (string, error) {
	var resp exchangeResponse
	target := c.endpoint(nil, "api", "auth", "google")
	if err := c.do(ctx, c.anon, http.MethodPost, target, exchangeRequest{Token: idToken}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", ErrEmptyAccessToken
	}
	return resp.AccessToken, nil
}
