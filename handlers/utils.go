package handlers

import (
	"errors"
	"log/slog"
	"net/url"

	"flexzone/api"
	"flexzone/database"
	"flexzone/services"
	"flexzone/session"
	"flexzone/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, errs validator.ValidationErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Validation failed",
		"details": errs,
	})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// ErrorStatus maps service, storage, session and backend errors to an HTTP
// status. Unknown errors map to 500.
func ErrorStatus(err error) int {
	var fiberErr *fiber.Error
	var fieldErrs validator.ValidationErrors
	var apiErr *api.Error

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &fieldErrs), errors.Is(err, database.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotSignedIn),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrInvalidUserInfo),
		errors.Is(err, api.ErrNoToken),
		errors.Is(err, session.ErrCorrupt):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPlanNotFound),
		errors.Is(err, database.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrSignInInProgress),
		errors.Is(err, database.ErrConstraint):
		return fiber.StatusConflict
	case errors.As(err, &apiErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError writes the response for err. message is used for errors that
// map to 500.
func handleError(c *fiber.Ctx, err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return validationError(c, fieldErrs)
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		slog.Warn("backend error", "path", c.Path(), "backend_status", apiErr.StatusCode)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":          "Backend request failed",
			"backend_status": apiErr.StatusCode,
		})
	}

	status := ErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		return serverErrorWithDetails(c, message, err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func invalidInput(c *fiber.Ctx, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return validationError(c, fieldErrs)
	}
	return badRequest(c, "Invalid request body")
}

// nameParam decodes the :name route param; exercise names may contain
// escaped spaces and slashes.
func nameParam(c *fiber.Ctx) string {
	raw := c.Params("name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}
