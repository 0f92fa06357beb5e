package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/validator"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var kindHints = map[string]string{
	"NotFoundError":   "not found",
	"ConflictError":   "already exists",
	"ValidationError": "invalid input",
	"PermissionError": "not permitted",
}

// responder turns service errors into the {type, message} envelope. The full
// cause is logged; the client only sees a generic sentence.
type responder struct {
	legacyStatus bool
}

func errorKind(err error) string {
	if errors.Is(err, validator.ErrInvalid) {
		return "ValidationError"
	}
	if errors.Is(err, auth.ErrNoIdentity) {
		return "AuthError"
	}
	if k := services.Kind(err); k != "" {
		return k
	}
	return "StoreError"
}

func statusFor(kind string) int {
	switch kind {
	case "ValidationError":
		return fiber.StatusBadRequest
	case "AuthError":
		return fiber.StatusUnauthorized
	case "PermissionError":
		return fiber.StatusForbidden
	case "NotFoundError":
		return fiber.StatusNotFound
	case "ConflictError":
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// fail writes an error response. legacyStatus, when non-zero and legacy
// status codes are enabled, replaces the precise status.
func (r responder) fail(c *fiber.Ctx, err error, action, message string, legacyStatus int) error {
	kind := errorKind(err)
	status := statusFor(kind)

	userID, _ := auth.GetUserID(c)
	requestID, _ := c.Locals("requestid").(string)
	attrs := []any{
		"action", action,
		"kind", kind,
		"error", err.Error(),
		"request_id", requestID,
		"user_id", userID,
		"method", c.Method(),
		"path", c.Path(),
	}
	if groupID := c.Params("groupId"); groupID != "" {
		attrs = append(attrs, "group_id", groupID)
	}

	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed", attrs...)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	} else {
		slog.Warn("request rejected", attrs...)
		if hint, ok := kindHints[kind]; ok {
			message = message + " (" + hint + ")"
		}
	}

	if r.legacyStatus && legacyStatus != 0 {
		status = legacyStatus
	}
	return c.Status(status).JSON(dto.Response{Type: dto.TypeError, Message: message})
}

func success(message string) dto.Response {
	return dto.Response{Type: dto.TypeSuccess, Message: message}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a uuid", validator.ErrInvalid, name)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, v *validator.Validator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: malformed body: %v", validator.ErrInvalid, err)
	}
	return v.Validate(out)
}
