// Package server assembles the fiber application: middleware, routes, and
// the wiring between the gateway clients, the guard, and the handlers.
package server

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/j-casimiro/zenith-ai/internal/assets"
	"github.com/j-casimiro/zenith-ai/internal/chat"
	"github.com/j-casimiro/zenith-ai/internal/config"
	"github.com/j-casimiro/zenith-ai/internal/gateway"
	"github.com/j-casimiro/zenith-ai/internal/guard"
	"github.com/j-casimiro/zenith-ai/internal/handlers"
	"github.com/j-casimiro/zenith-ai/internal/logger"
	"github.com/j-casimiro/zenith-ai/internal/profilecache"
	"github.com/j-casimiro/zenith-ai/internal/session"
)

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	profiles *profilecache.Cache
}

func New(cfg *config.Config) (*Server, error) {
	render, err := handlers.NewRenderer()
	if err != nil {
		return nil, err
	}
	staticFS, err := assets.Static()
	if err != nil {
		return nil, err
	}

	store := session.NewStore()
	authClient := gateway.NewAuthClient(cfg.BackendURL)
	historyClient := gateway.NewHistoryClient(cfg.BackendURL)
	g := guard.New(store, authClient)
	sessions := chat.NewManager(historyClient)

	// The profile cache is an optional nicety; a broken cache file must
	// not keep the front end from serving.
	var profileStore handlers.ProfileStore
	profiles, err := profilecache.Open(cfg.ProfileCachePath)
	if err != nil {
		logger.Warnf("profile cache unavailable: %v", err)
	} else {
		profileStore = profiles
	}

	home := handlers.NewHomeHandler(g, render)
	auth := handlers.NewAuthHandler(authClient, store, profileStore, sessions, render,
		cfg.LoginCookieMaxAge, cfg.OAuthCookieMaxAge)
	workspace := handlers.NewWorkspaceHandler(g, store, sessions, historyClient, render)

	app := fiber.New(fiber.Config{
		AppName:               "zenith",
		DisableStartupMessage: !cfg.Dev,
	})

	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(staticFS),
	}))
	app.Use(g.Navigation())

	app.Get("/", home.Landing)
	app.Get("/auth/login", auth.LoginPage)
	app.Post("/auth/login", auth.Login)
	app.Get("/auth/register", auth.RegisterPage)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/logout", auth.Logout)
	app.Get("/auth/google/callback", auth.GoogleCallback)

	app.Get("/workspace", workspace.Workspace)
	app.Post("/workspace/summarize", workspace.Summarize)
	app.Post("/workspace/new", workspace.NewChat)
	app.Post("/workspace/clear", workspace.ClearChat)
	app.Get("/workspace/history/:id", workspace.SelectHistory)

	return &Server{app: app, cfg: cfg, profiles: profiles}, nil
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	logger.Infof("zenith listening on %s (backend %s)", s.cfg.Addr, s.cfg.BackendURL)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) Shutdown() error {
	if s.profiles != nil {
		s.profiles.Close()
	}
	return s.app.Shutdown()
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Logger.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
