// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"snapconfine/pkg/cli"
	"snapconfine/pkg/config"
	"snapconfine/pkg/logger"
	"snapconfine/pkg/logging"
	"snapconfine/pkg/runner"
	"snapconfine/pkg/utils"

	"context"
	"fmt"
	"io"
	"os"
)

var Version = "development"

// App represents the main application
type App struct {
	argv   []string
	stdout io.Writer
	config config.Config

	// replaced in tests
	credentials func() (utils.Credentials, error)
}

// New creates a new App instance for the given command line
func New(argv []string, stdout io.Writer) *App {
	return &App{
		argv:        argv,
		stdout:      stdout,
		credentials: utils.CurrentCredentials,
	}
}

// Run executes the main application logic
func (a *App) Run(ctx context.Context) error {
	// Initialize logging from the environment until the configuration is known
	logger.Initialize(logger.OptionsFromEnv())

	args, rest, err := cli.Parse(a.argv)
	if err != nil {
		return err
	}
	defer cli.Release(&args)

	if args.IsVersionQuery() {
		fmt.Fprintf(a.stdout, "%s %s\n", "snap-confine", utils.GetVersion(Version))
		return nil
	}

	trusted := false
	if creds, err := a.credentials(); err != nil {
		logging.SystemLogger.Debug("cannot read credentials, environment not trusted: %v", err)
	} else {
		trusted = creds.IsTrustedCaller()
	}
	if !trusted && os.Getenv(config.PathEnv) != "" {
		logging.ConfigLogger.Warn("ignoring %s for an unprivileged or setuid caller", config.PathEnv)
	}

	cfg, configFile, err := config.LoadConfiguration(trusted)
	if err != nil {
		return err
	}
	config.ApplyEnvironment(&cfg)
	if err := config.ValidateConfig(&cfg); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", configFile, err)
	}
	a.config = cfg

	logger.Initialize(cfg.LoggerOptions())
	defer logger.TraceFunction("app.Run")()
	if configFile != "" {
		logging.ConfigLogger.Debug("configuration loaded from %s", configFile)
	} else {
		logging.ConfigLogger.Debug("no configuration file, using defaults")
	}

	logging.AppLogger.Debug("%d argument(s) left for the launched program", len(rest)-1)
	return runner.New(a.config, args, rest, a.stdout).UseCredentials(a.credentials).Run(ctx)
}
