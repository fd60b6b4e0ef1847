// Package server wraps the fiber application with lifecycle methods.
package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// HTTPServer wraps a fiber application with address and lifecycle methods.
type HTTPServer struct {
	app  *fiber.App
	addr string
}

// NewHTTPServer creates an HTTPServer with given application and address.
func NewHTTPServer(app *fiber.App, addr string) *HTTPServer {
	return &HTTPServer{app: app, addr: addr}
}

// Start serves on the configured address until Stop is called.
func (s *HTTPServer) Start() error {
	if err := s.app.Listen(s.addr); err != nil {
		return fmt.Errorf("failed to serve http: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down, honoring the context deadline.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
