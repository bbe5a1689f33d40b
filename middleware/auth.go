package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"flexzone/session"

	"github.com/gofiber/fiber/v2"
)

// SessionReader is the part of the secure store the guard needs
type SessionReader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// SessionRequired rejects requests unless they carry the session token
// issued at sign-in as a Bearer token
func SessionRequired(store SessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return notSignedIn(c)
		}

		issued, found, err := store.Get(c.UserContext(), session.KeySessionToken)
		if err != nil {
			return err
		}
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(issued)) != 1 {
			return notSignedIn(c)
		}

		email, found, err := store.Get(c.UserContext(), session.KeySession)
		if err != nil {
			return err
		}
		if !found || email == "" {
			return notSignedIn(c)
		}

		c.Locals("userEmail", email)
		return c.Next()
	}
}

func GetUserEmail(c *fiber.Ctx) string {
	email, ok := c.Locals("userEmail").(string)
	if !ok {
		return ""
	}
	return email
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func notSignedIn(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":         "Not signed in",
		"authenticated": false,
	})
}
