package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flexzone/session"

	"golang.org/x/oauth2"
)

const maxErrorBody = 4 << 10

var ErrNoToken = errors.New("no backend token stored")

// Error is returned for any non-2xx response from the backend.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// TokenStore is the part of the secure store the client reads the backend
// JWT from.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// storeTokenSource reads the JWT from the store. It is built per request
// so the lookup runs under the request context.
type storeTokenSource struct {
	ctx   context.Context
	store TokenStore
}

func (s storeTokenSource) Token() (*oauth2.Token, error) {
	jwt, ok, err := s.store.Get(s.ctx, session.KeyJWT)
	if err != nil {
		return nil, err
	}
	if !ok || jwt == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: jwt, TokenType: "Bearer"}, nil
}

// bearerTransport attaches the stored JWT to every request. Tokens are never
// reused across requests, so sign-in and sign-out take effect immediately.
type bearerTransport struct {
	store TokenStore
	base  http.RoundTripper
}

func (t bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tr := &oauth2.Transport{
		Source: storeTokenSource{ctx: req.Context(), store: t.store},
		Base:   t.base,
	}
	return tr.RoundTrip(req)
}

// Client talks to the FlexZone backend.
type Client struct {
	baseURL *url.URL
	authed  *http.Client
	anon    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, tokens TokenStore, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: u,
		authed: &http.Client{
			Transport: bearerTransport{store: tokens, base: http.DefaultTransport},
			Timeout:   30 * time.Second,
		},
		anon:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}, nil
}

// endpoint joins path segments onto the base URL. Each segment is escaped
// once, so a slash inside a name stays part of that segment.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.baseURL.EscapedPath() + "/" + strings.Join(escaped, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return ErrNoToken
		}
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &Error{
			Method:     method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
		c.logger.Warn("backend request failed",
			"method", method, "path", req.URL.Path, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s %s response: %w", method, req.URL.Path, err)
	}
	return nil
}
