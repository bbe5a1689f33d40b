package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request id in both directions. An id sent by
// the app is kept so its own logs line up with ours.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 64

// StructuredLogger logs one line per request. Errors returned down the chain
// are passed to the app's error handler first so the logged status is the
// one the client sees.
func StructuredLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		c.Locals("requestID", requestID)
		c.Set(HeaderRequestID, requestID)

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("route", c.Route().Path),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.IP()),
		}
		if email := GetUserEmail(c); email != "" {
			attrs = append(attrs, slog.String("user_email", email))
		}
		if chainErr != nil {
			attrs = append(attrs, slog.String("error", chainErr.Error()))
		}

		level, msg := levelFor(c.Path(), status)
		logger.LogAttrs(c.UserContext(), level, msg, attrs...)

		return nil
	}
}

// GetRequestID returns the id assigned by StructuredLogger, or "".
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestID").(string)
	return id
}

func levelFor(path string, status int) (slog.Level, string) {
	switch {
	case status >= fiber.StatusInternalServerError:
		return slog.LevelError, "server error"
	case status >= fiber.StatusBadRequest:
		return slog.LevelWarn, "client error"
	case path == "/health":
		// health checks are frequent
		return slog.LevelDebug, "request completed"
	default:
		return slog.LevelInfo, "request completed"
	}
}
