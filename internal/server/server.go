package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/uzak0209/echo/internal/auth"
	"github.com/uzak0209/echo/internal/config"
	"github.com/uzak0209/echo/internal/post"
	"github.com/uzak0209/echo/internal/reaction"
	"github.com/uzak0209/echo/internal/store"
	"github.com/uzak0209/echo/internal/stream"
)

// Stores bundles the repositories a server instance works against.
type Stores struct {
	Posts     store.Posts
	Users     store.Users
	Reactions store.Reactions
}

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	Log       *zap.Logger
	Posts     *stream.Topic[stream.PostEvent]
	Reactions *stream.ReactionTopics
}

func NewServer(cfg config.Config, stores Stores, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:       app,
		Cfg:       cfg,
		Log:       log,
		Posts:     stream.NewPostTopic(),
		Reactions: stream.NewReactionTopics(),
	}

	registerRoutes(s, stores)
	return s
}

func registerRoutes(s *Server, stores Stores) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	tokens := auth.NewTokens(s.Cfg.JWTSecret)
	requireAccess := auth.RequireAccess(tokens)

	authSvc := auth.NewService(stores.Users, tokens)
	postSvc := post.NewService(stores.Posts, stores.Users, s.Posts, s.Cfg.ViewThreshold, s.Log)
	reactionSvc := reaction.NewService(stores.Reactions, stores.Posts, s.Reactions, s.Log)

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc, requireAccess)
	post.RegisterRoutes(s.App.Group("/posts"), postSvc, s.Cfg.TimelineLimit, requireAccess)
	reaction.RegisterRoutes(s.App, reactionSvc, requireAccess)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Posts, s.Reactions, auth.NewStreamAuth(tokens))
}
