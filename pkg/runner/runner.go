// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package runner

import (
	"snapconfine/pkg/cli"
	"snapconfine/pkg/config"
	"snapconfine/pkg/logging"
	"snapconfine/pkg/utils"

	"context"
	"fmt"
	"io"
	"runtime"
)

// Runner prepares a launch once the command line has been parsed
type Runner struct {
	cfg  config.Config
	args *cli.ParsedArgs
	rest []string
	out  io.Writer

	// replaced in tests
	goos        string
	credentials func() (utils.Credentials, error)
	setDumpable func(bool) error
}

// New creates a new runner instance
func New(cfg config.Config, args *cli.ParsedArgs, rest []string, out io.Writer) *Runner {
	return &Runner{
		cfg:         cfg,
		args:        args,
		rest:        rest,
		out:         out,
		goos:        runtime.GOOS,
		credentials: utils.CurrentCredentials,
		setDumpable: utils.SetDumpable,
	}
}

// UseCredentials replaces the source of the process credentials
func (r *Runner) UseCredentials(credentials func() (utils.Credentials, error)) *Runner {
	r.credentials = credentials
	return r
}

// Run validates the environment, builds the launch plan and writes it out
func (r *Runner) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	creds, err := r.validateEnvironment()
	if err != nil {
		logging.RunnerLogger.Debug("environment rejected: %v", err)
		return err
	}
	logging.SystemLogger.Debug("credentials: %s (setuid: %t, systemd: %t)", creds, creds.IsSetuid(), utils.IsRunningUnderSystemd())

	r.harden()

	plan, err := NewPlan(r.args, r.rest, r.cfg)
	if err != nil {
		return err
	}

	planLogger := logging.GetSubLogger("runner", "plan")
	planLogger.Verbose("security tag %s, %s confinement, base %s", plan.SecurityTag, plan.Mode(), plan.Base)
	planLogger.Debug("command: %s", plan.Command)

	if err := ctx.Err(); err != nil {
		return err
	}
	return plan.Render(r.out)
}

// validateEnvironment checks if the runtime environment is suitable
func (r *Runner) validateEnvironment() (utils.Credentials, error) {
	if r.goos != "linux" {
		return utils.Credentials{}, fmt.Errorf("snap-confine only runs on linux, not %s", r.goos)
	}

	creds, err := r.credentials()
	if err != nil {
		return utils.Credentials{}, fmt.Errorf("cannot read process credentials: %w", err)
	}

	if r.cfg.RequireSetuid && !creds.IsPrivileged() {
		return creds, fmt.Errorf("snap-confine needs to run with an effective uid of root (%s)", creds)
	}

	return creds, nil
}

// harden keeps the invoking user from attaching to or dumping the process
func (r *Runner) harden() {
	if err := r.setDumpable(false); err != nil {
		// not fatal: only reduces exposure of the privileged process
		logging.SystemLogger.Warn("%v", err)
		return
	}
	logging.SystemLogger.Trace("process marked as not dumpable")
}
