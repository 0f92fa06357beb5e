package middleware

import (
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/dto"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected verifies identity-provider bearer tokens, either against a
// JWKS endpoint or an HS256 shared secret.
func JWTProtected(cfg *config.Config) fiber.Handler {
	jwtCfg := jwtware.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Type:    dto.TypeError,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	}
	if cfg.AuthJWKSURL != "" {
		jwtCfg.JWKSetURLs = []string{cfg.AuthJWKSURL}
	} else {
		jwtCfg.SigningKey = jwtware.SigningKey{Key: []byte(cfg.AuthJWTSecret)}
	}
	return jwtware.New(jwtCfg)
}

// Identity copies the verified subject into the request context and tags
// the Sentry scope with it. It must run after JWTProtected.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals("user").(*jwt.Token)
		sub, err := auth.SubjectFromToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Type:    dto.TypeError,
				Message: "Unauthorized: token has no subject",
			})
		}
		auth.SetUserID(c, sub)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.Scope().SetUser(sentry.User{ID: sub})
		}
		return c.Next()
	}
}
