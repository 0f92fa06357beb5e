package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// ErrNoIdentity is returned when the request carries no usable subject.
var ErrNoIdentity = errors.New("missing authenticated user")

// SubjectFromToken extracts the identity provider's subject claim.
func SubjectFromToken(token *jwt.Token) (string, error) {
	if token == nil {
		return "", errors.New("invalid token in context")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

// SetUserID stores the resolved caller for downstream handlers.
func SetUserID(c *fiber.Ctx, userID string) {
	c.Locals(userIDKey, userID)
}

// GetUserID returns the trusted caller id placed by the auth middleware.
func GetUserID(c *fiber.Ctx) (string, error) {
	if id, ok := c.Locals(userIDKey).(string); ok && id != "" {
		return id, nil
	}
	if token, ok := c.Locals("user").(*jwt.Token); ok {
		return SubjectFromToken(token)
	}
	return "", ErrNoIdentity
}
