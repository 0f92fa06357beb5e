package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	User        *handlers.UserHandler
	Group       *handlers.GroupHandler
	GroupMember *handlers.GroupMemberHandler
	Health      *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	// Public
	app.Get("/health", h.Health.Check)
	app.Get("/metrics", metrics.Handler())

	// Everything else requires an identity-provider token. The group is
	// registered after the public routes so they never reach its middleware.
	api := app.Group("",
		limiter.New(limiter.Config{
			Max:               cfg.RateLimitPerMinute,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}),
		middleware.JWTProtected(cfg),
		middleware.Identity(),
	)

	api.Post("/user", h.User.CreateUser)
	api.Post("/user/invites/resolve", h.User.ResolveInvites)

	api.Get("/group/albums/:groupId", h.Group.AlbumsOfGroup)
	api.Get("/group/all/:userId", h.Group.GroupsOfUser)
	api.Post("/group", h.Group.CreateGroup)
	api.Get("/group/:groupId", h.Group.GetGroup)
	api.Delete("/group/:groupId", h.Group.DeleteGroup)
	api.Post("/group/:groupId/:albumId", h.Group.ShareAlbum)
	api.Delete("/group/:groupId/:albumId", h.Group.UnshareAlbum)

	api.Post("/groupmember/:groupId", h.GroupMember.AddMember)
	api.Get("/groupmember/:groupId", h.GroupMember.ListMembers)
	api.Delete("/groupmember/:groupId/:userId", h.GroupMember.RemoveMember)

	api.Get("/groupinvite/:groupId", h.GroupMember.ListInvites)
	api.Delete("/groupinvite/:groupId/:phone", h.GroupMember.RevokeInvite)
}
