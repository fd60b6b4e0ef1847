// Package router wires handlers and middleware into the fiber application.
package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndzhokv/userd/internal/api/http/handler"
	"github.com/ndzhokv/userd/internal/api/http/middleware"
	"github.com/ndzhokv/userd/internal/logger"
	"github.com/ndzhokv/userd/internal/model"
)

// Router builds the fiber application from handlers and middleware.
type Router struct {
	sessions   handler.SessionService
	accounts   handler.AccountService
	verifier   middleware.SessionVerifier
	contextMgr model.ContextManager
	logger     *logger.Logger
}

// New creates a router over the given services.
func New(
	sessions handler.SessionService,
	accounts handler.AccountService,
	verifier middleware.SessionVerifier,
	contextMgr model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessions:   sessions,
		accounts:   accounts,
		verifier:   verifier,
		contextMgr: contextMgr,
		logger:     logger,
	}
}

// Register mounts every route and returns the application.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             3 * 1024 * 1024,
	})

	authenticate := middleware.NewAuthenticate(r.verifier, r.contextMgr, r.logger)
	app.Use(authenticate.Handle)

	authHandler := handler.NewAuth(r.sessions, r.accounts, r.logger)
	userHandler := handler.NewUser(r.accounts, r.contextMgr, r.logger)

	api := app.Group("/api/1.0")

	api.Post("/users", userHandler.Register)
	api.Post("/users/token/:token", userHandler.Activate)
	api.Get("/users", userHandler.List)
	api.Get("/users/:id", userHandler.Get)
	api.Put("/users/:id", userHandler.Update)
	api.Delete("/users/:id", userHandler.Delete)

	api.Get("/images/:key", userHandler.Image)

	api.Post("/auth", authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	api.Post("/user/password", authHandler.RequestPasswordReset)
	api.Put("/user/password", authHandler.CompletePasswordReset)

	return app
}
