// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package logging

import (
	"snapconfine/pkg/logger"
)

// Common scoped loggers for consistent logging throughout the application
var (
	// Front-end
	AppLogger    = logger.NewScopedLogger("app", "")
	ArgsLogger   = logger.NewScopedLogger("args", "")
	ConfigLogger = logger.NewScopedLogger("config", "")

	// Launch preparation
	RunnerLogger = logger.NewScopedLogger("runner", "")
	SystemLogger = logger.NewScopedLogger("system", "")
)

// GetSubLogger returns a scoped logger with a sub-component
func GetSubLogger(component, subComponent string) *logger.ScopedLogger {
	scope := component
	if subComponent != "" {
		scope = component + "/" + subComponent
	}
	return logger.NewScopedLogger(scope, "")
}
