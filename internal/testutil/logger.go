// Package testutil holds helpers shared by tests across packages.
package testutil

import "github.com/ndzhokv/userd/internal/logger"

// MakeNoopLogger returns a logger that discards all output.
func MakeNoopLogger() *logger.Logger {
	return logger.NewDiscard()
}
