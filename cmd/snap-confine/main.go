// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"snapconfine/pkg/app"
	"snapconfine/pkg/cli"
	"snapconfine/pkg/scerror"
	"snapconfine/pkg/utils"

	"context"
	"fmt"
	"os"
)

// Version information
var (
	Version   = "development"
	BuildTime = "unknown"
)

func main() {
	app.Version = Version

	if err := app.New(os.Args, os.Stdout).Run(context.Background()); err != nil {
		if scerror.Match(err, cli.Domain, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if scerror.Match(err, cli.Domain, 0) {
			scerror.DieOnError(err)
		}
		utils.ErrorHandler("", err, true)
	}
}
