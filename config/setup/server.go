package setup

import (
	"log/slog"
	"time"

	"flexzone/config"
	"flexzone/handlers"
	"flexzone/middleware"

	"github.com/gofiber/fiber/v2"
)

// NewFiberApp creates the Fiber app that serves the local API
func NewFiberApp(logger *slog.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "flexzone",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          35 * time.Second,
		IdleTimeout:           30 * time.Second,
		BodyLimit:             64 * 1024,
		DisableStartupMessage: config.AppConfig.Env == "production",
		ErrorHandler:          CustomErrorHandler(logger),
	})
}

// CustomErrorHandler answers errors that escaped a handler. It uses the same
// status mapping as the handlers so a storage or session error returned from
// middleware is not reported as a generic 500.
func CustomErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := handlers.ErrorStatus(err)

		message := err.Error()
		if e, ok := err.(*fiber.Error); ok {
			message = e.Message
		} else if code >= fiber.StatusInternalServerError {
			message = "Internal server error"
		}

		requestID := middleware.GetRequestID(c)
		level := slog.LevelWarn
		if code >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.UserContext(), level, "request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
